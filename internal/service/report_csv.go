package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"estate-admin/internal/domain"
)

// CSV layout. Section order and row order are fixed; ParseReportCSV depends on both.
const (
	ReportBanner = "Property Management Report"

	labelGenerated = "Generated"
	labelTotal     = "Total"
	labelChange    = "Monthly Change"
	labelLastMonth = "Last Month"
	labelThisMonth = "Current Month"
	labelUpdated   = "Last Updated"

	sectionProperties = "Properties"
	sectionUsers      = "Users"
	sectionInquiries  = "Inquiries"
	sectionViews      = "Views"
	sectionPopular    = "Popular Properties"
)

var popularHeader = []string{"Title", "Views", "Favorites", "Inquiries"}

// MarshalCSV renders the report:
//
//	banner
//	Generated,<RFC 3339 time>
//	<blank>
//	<section>            one per statistic group, separated by blank lines
//	Total,<n>
//	Monthly Change,<x.y>%,<increase|decrease>
//	...
//	Popular Properties
//	Title,Views,Favorites,Inquiries
//	"<title>",<views>,<favorites>,<inquiries>
//
// Titles are always quoted. The output ends with a newline.
func MarshalCSV(r *domain.Report) string {
	var b strings.Builder
	line := func(fields ...string) {
		b.WriteString(strings.Join(fields, ","))
		b.WriteByte('\n')
	}

	line(ReportBanner)
	line(labelGenerated, r.GeneratedAt.UTC().Format(time.RFC3339))
	line()

	for _, sec := range []struct {
		name string
		stat domain.Stat
	}{
		{sectionProperties, r.Properties},
		{sectionUsers, r.Users},
		{sectionInquiries, r.Inquiries},
		{sectionViews, r.Views},
	} {
		line(sec.name)
		line(labelTotal, strconv.Itoa(sec.stat.Total))
		line(labelChange, formatChange(sec.stat.MonthlyChange), string(sec.stat.Trend))
		if sec.name == sectionViews {
			line(labelLastMonth, strconv.Itoa(r.ViewsData.LastMonthViews))
			line(labelThisMonth, strconv.Itoa(r.ViewsData.CurrentMonthViews))
			line(labelUpdated, r.ViewsData.LastUpdated.UTC().Format(time.RFC3339))
		}
		line()
	}

	line(sectionPopular)
	line(popularHeader...)
	for _, p := range r.PopularProperties {
		line(quote(p.Title), strconv.Itoa(p.Views), strconv.Itoa(p.Favorites), strconv.Itoa(p.Inquiries))
	}
	return b.String()
}

func formatChange(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// ParseReportCSV reads MarshalCSV output back. Popular properties come back without ids.
func ParseReportCSV(rd io.Reader) (*domain.Report, error) {
	cr := csv.NewReader(rd)
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read report csv: %w", err)
	}
	if len(rows) < 2 || rows[0][0] != ReportBanner {
		return nil, errors.New("read report csv: missing banner")
	}

	rep := &domain.Report{PopularProperties: []domain.PopularProperty{}}
	var cur *domain.Stat
	section := ""
	headerSeen := false
	for n, row := range rows[1:] {
		lineNo := n + 2
		if len(row) == 1 {
			switch row[0] {
			case sectionProperties:
				cur = &rep.Properties
			case sectionUsers:
				cur = &rep.Users
			case sectionInquiries:
				cur = &rep.Inquiries
			case sectionViews:
				cur = &rep.Views
			case sectionPopular:
				cur = nil
			default:
				return nil, fmt.Errorf("line %d: unknown section %q", lineNo, row[0])
			}
			section = row[0]
			continue
		}
		// The column header is the first row of the popular section, and only that row.
		if section == sectionPopular && !headerSeen {
			if !slices.Equal(row, popularHeader) {
				return nil, fmt.Errorf("line %d: popular properties header missing", lineNo)
			}
			headerSeen = true
			continue
		}
		if err := parseRow(rep, cur, section, row); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	return rep, nil
}

func parseRow(rep *domain.Report, cur *domain.Stat, section string, row []string) error {
	var err error
	switch {
	case row[0] == labelGenerated && section == "":
		rep.GeneratedAt, err = time.Parse(time.RFC3339, row[1])
	case section == sectionPopular:
		if len(row) != len(popularHeader) {
			return fmt.Errorf("popular row has %d fields", len(row))
		}
		p := domain.PopularProperty{Title: row[0]}
		if p.Views, err = strconv.Atoi(row[1]); err == nil {
			if p.Favorites, err = strconv.Atoi(row[2]); err == nil {
				p.Inquiries, err = strconv.Atoi(row[3])
			}
		}
		rep.PopularProperties = append(rep.PopularProperties, p)
	case cur == nil:
		return fmt.Errorf("row %q outside a section", row[0])
	case row[0] == labelTotal:
		cur.Total, err = strconv.Atoi(row[1])
	case row[0] == labelChange:
		if len(row) != 3 {
			return errors.New("monthly change needs a trend")
		}
		cur.MonthlyChange, err = strconv.ParseFloat(strings.TrimSuffix(row[1], "%"), 64)
		cur.Trend = domain.Trend(row[2])
	case section == sectionViews && row[0] == labelLastMonth:
		rep.ViewsData.LastMonthViews, err = strconv.Atoi(row[1])
	case section == sectionViews && row[0] == labelThisMonth:
		rep.ViewsData.CurrentMonthViews, err = strconv.Atoi(row[1])
	case section == sectionViews && row[0] == labelUpdated:
		rep.ViewsData.LastUpdated, err = time.Parse(time.RFC3339, row[1])
	default:
		return fmt.Errorf("unexpected row %q", row[0])
	}
	return err
}
