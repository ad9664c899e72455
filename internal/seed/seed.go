// Package seed provides the collections written on first load of an empty store.
package seed

import (
	"strconv"
	"time"

	"estate-admin/internal/domain"
)

const day = 24 * time.Hour

var defaultAgent = domain.AgentSnapshot{
	Name:  "Sarah Mitchell",
	Role:  "Senior Property Consultant",
	Phone: "+971 50 123 4567",
	Email: "sarah.mitchell@example.com",
	Image: "/images/agents/sarah.jpg",
}

// Properties returns the showcase listings. Creation dates are spread over the last
// two 30-day windows so the dashboard has something to compare.
func Properties(now time.Time) []domain.Property {
	return []domain.Property{
		{
			ID: 1, Title: "Palm Crest Villa", Description: "Beachfront villa with private pool.",
			Price: 4_500_000, Location: "Palm Jumeirah", City: "Dubai", Bedrooms: 5, Bathrooms: 6, Area: 6200,
			Category: domain.CategoryVilla, Status: domain.PropertyNowSelling,
			Images: []string{"/images/properties/palm-crest-1.jpg"}, Developer: "Nakheel",
			Agent: defaultAgent, Coordinates: domain.Coordinates{Lat: 25.1124, Lng: 55.1390},
			IsFeatured: true, CreatedAt: now.Add(-5 * day), ViewCount: 42,
		},
		{
			ID: 2, Title: "Marina Heights Apartment", Description: "Two-bedroom apartment with marina views.",
			Price: 1_200_000, Location: "Dubai Marina", City: "Dubai", Bedrooms: 2, Bathrooms: 2, Area: 1350,
			Category: domain.CategoryApartment, Status: domain.PropertyNowSelling,
			Images: []string{"/images/properties/marina-heights-1.jpg"}, Developer: "Emaar",
			Agent: defaultAgent, Coordinates: domain.Coordinates{Lat: 25.0800, Lng: 55.1400},
			IsFeatured: true, CreatedAt: now.Add(-12 * day), ViewCount: 87,
		},
		{
			ID: 3, Title: "Skyline Penthouse", Description: "Duplex penthouse on the 60th floor.",
			Price: 9_800_000, Location: "Downtown", City: "Dubai", Bedrooms: 4, Bathrooms: 5, Area: 5400,
			Category: domain.CategoryPenthouse, Status: domain.PropertyComingSoon,
			Images: []string{"/images/properties/skyline-1.jpg"}, Developer: "Emaar",
			Agent: defaultAgent, Coordinates: domain.Coordinates{Lat: 25.1972, Lng: 55.2744},
			CreatedAt: now.Add(-40 * day), ViewCount: 130,
		},
		{
			ID: 4, Title: "Arabian Ranches Townhouse", Description: "Family townhouse next to the park.",
			Price: 2_300_000, Location: "Arabian Ranches", City: "Dubai", Bedrooms: 3, Bathrooms: 4, Area: 2600,
			Category: domain.CategoryTownhouse, Status: domain.PropertyNowSelling,
			Images: []string{"/images/properties/ranches-1.jpg"}, Developer: "Emaar",
			Agent: defaultAgent, Coordinates: domain.Coordinates{Lat: 25.0550, Lng: 55.2680},
			CreatedAt: now.Add(-45 * day), ViewCount: 19,
		},
		{
			ID: 5, Title: "Jumeirah Park Semi", Description: "Semi-detached home with garden.",
			Price: 3_100_000, Location: "Jumeirah Park", City: "Dubai", Bedrooms: 4, Bathrooms: 4, Area: 3900,
			Category: domain.CategorySemi, Status: domain.PropertySoldOut,
			Images: []string{"/images/properties/jp-semi-1.jpg"}, Developer: "Nakheel",
			Agent: defaultAgent, Coordinates: domain.Coordinates{Lat: 25.0430, Lng: 55.1560},
			CreatedAt: now.Add(-90 * day), ViewCount: 64,
		},
	}
}

func Views(now time.Time) domain.ViewsSnapshot {
	return domain.ViewsSnapshot{LastUpdated: now}
}

// Users returns one user per role. IDs are fixed so seeded agents can reference them.
func Users(now time.Time) []domain.User {
	mk := func(id, name, email string, role domain.Role, age time.Duration) domain.User {
		return domain.User{
			ID:          id,
			Name:        name,
			Email:       email,
			Role:        role,
			Status:      domain.UserActive,
			Permissions: domain.PermissionsFor(role),
			CreatedAt:   now.Add(-age),
			UpdatedAt:   now.Add(-age),
		}
	}
	return []domain.User{
		mk("u-admin", "Admin", "admin@example.com", domain.RoleSuperAdmin, 120*day),
		mk("u-sarah", "Sarah Mitchell", "sarah.mitchell@example.com", domain.RoleAgent, 75*day),
		mk("u-editor", "Omar Haddad", "omar.haddad@example.com", domain.RoleEditor, 20*day),
		mk("u-viewer", "Lina Chen", "lina.chen@example.com", domain.RoleViewer, 3*day),
	}
}

// Inquiries returns sample inquiries against the seeded listings.
func Inquiries(now time.Time, props []domain.Property) []domain.Inquiry {
	out := make([]domain.Inquiry, 0, 2)
	requesters := []struct{ name, email, phone, msg string }{
		{"James Carter", "james.carter@example.com", "+44 7700 900123", "Is the villa still available for viewing this week?"},
		{"Aisha Rahman", "aisha.rahman@example.com", "+971 55 765 4321", "Could you share the service charges?"},
	}
	for i, r := range requesters {
		if i >= len(props) {
			break
		}
		created := now.Add(-time.Duration(i+2) * day)
		out = append(out, domain.Inquiry{
			ID:               "inq-seed-" + strconv.Itoa(i+1),
			PropertyID:       props[i].ID,
			PropertySnapshot: domain.SnapshotOf(&props[i]),
			Name:             r.name,
			Email:            r.email,
			Phone:            r.phone,
			Message:          r.msg,
			Status:           domain.InquiryNew,
			Notes:            []domain.Note{},
			StatusHistory: []domain.StatusChange{
				{Status: domain.InquiryNew, ChangedAt: created, ChangedBy: domain.SystemActor},
			},
			CreatedAt: created,
			UpdatedAt: created,
		})
	}
	return out
}
