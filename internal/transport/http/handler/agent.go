package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"estate-admin/internal/domain"
	"estate-admin/internal/repo"
	"estate-admin/internal/transport/http/ez"
)

type AgentHandler struct {
	agents *repo.AgentRepo
	guard  Guard
}

func NewAgentHandler(agents *repo.AgentRepo, guard Guard) *AgentHandler {
	return &AgentHandler{agents: agents, guard: guard}
}

type assignBody struct {
	PropertyID string `json:"propertyId" binding:"required"`
}

// transactionBody accepts the date as 2006-01-02 or RFC 3339.
type transactionBody struct {
	PropertyID      string  `json:"propertyId"`
	Value           float64 `json:"value"`
	TransactionDate string  `json:"transactionDate" binding:"required"`
	ClientName      string  `json:"clientName"`
}

func (b transactionBody) input() (domain.TransactionInput, error) {
	d, err := time.Parse(time.DateOnly, b.TransactionDate)
	if err != nil {
		if d, err = time.Parse(time.RFC3339, b.TransactionDate); err != nil {
			return domain.TransactionInput{}, ez.BadRequest("transactionDate must be YYYY-MM-DD or RFC 3339")
		}
	}
	return domain.TransactionInput{PropertyID: b.PropertyID, Value: b.Value, TransactionDate: d, ClientName: b.ClientName}, nil
}

func (h *AgentHandler) MountAdmin(g *gin.RouterGroup) {
	read, write := split(g, h.guard, domain.PermAgentsRead, domain.PermAgentsWrite)

	ez.Crud(read, ez.Resource[domain.Agent, string, domain.AgentInput, domain.AgentPatch]{
		Path: "/agents", Name: "agent", ParseID: ez.StringID,
		List: h.agents.GetAll,
		Filter: func(c *gin.Context, items []domain.Agent) ([]domain.Agent, error) {
			ctx := c.Request.Context()
			switch {
			case c.Query("userId") != "":
				a, err := h.agents.GetByUserID(ctx, c.Query("userId"))
				if err != nil || a == nil {
					return []domain.Agent{}, err
				}
				return []domain.Agent{*a}, nil
			case c.Query("status") != "":
				return h.agents.GetByStatus(ctx, domain.AgentStatus(c.Query("status")))
			case c.Query("specialization") != "":
				return h.agents.GetBySpecialization(ctx, domain.Specialization(c.Query("specialization")))
			}
			return items, nil
		},
		Get: h.agents.GetByID,
	})
	ez.Crud(write, ez.Resource[domain.Agent, string, domain.AgentInput, domain.AgentPatch]{
		Path: "/agents", Name: "agent", ParseID: ez.StringID,
		Create: h.agents.Create,
		Update: h.agents.Update,
		Delete: h.agents.Delete,
	})

	ez.RegisterAction(read, ez.Action[struct{}, []domain.Agent]{
		Method: "GET", Path: "/rankings/agents", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Agent, error) {
			limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
			if err != nil {
				return nil, ez.BadRequest("invalid limit")
			}
			return h.agents.GetTopPerformers(c.Request.Context(), limit)
		},
	})

	ez.RegisterAction(write, ez.Action[statusBody[domain.AgentStatus], *domain.Agent]{
		Method: "PUT", Path: "/agents/:id/status", Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *statusBody[domain.AgentStatus]) (*domain.Agent, error) {
			return found(h.agents.UpdateStatus(c.Request.Context(), c.Param("id"), in.Status))
		},
	})

	ez.RegisterAction(write, ez.Action[assignBody, *domain.Agent]{
		Method: "POST", Path: "/agents/:id/properties", Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *assignBody) (*domain.Agent, error) {
			return found(h.agents.AssignProperty(c.Request.Context(), c.Param("id"), in.PropertyID))
		},
	})
	ez.RegisterAction(write, ez.Action[struct{}, *domain.Agent]{
		Method: "DELETE", Path: "/agents/:id/properties/:propertyId", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Agent, error) {
			return found(h.agents.UnassignProperty(c.Request.Context(), c.Param("id"), c.Param("propertyId")))
		},
	})

	ez.RegisterAction(write, ez.Action[domain.Certification, *domain.Agent]{
		Method: "POST", Path: "/agents/:id/certifications", Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *domain.Certification) (*domain.Agent, error) {
			return found(h.agents.AddCertification(c.Request.Context(), c.Param("id"), *in))
		},
	})
	ez.RegisterAction(write, ez.Action[domain.Document, *domain.Agent]{
		Method: "POST", Path: "/agents/:id/documents", Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *domain.Document) (*domain.Agent, error) {
			return found(h.agents.AddDocument(c.Request.Context(), c.Param("id"), *in))
		},
	})
	ez.RegisterAction(write, ez.Action[domain.PerformancePatch, *domain.Agent]{
		Method: "PUT", Path: "/agents/:id/performance", Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *domain.PerformancePatch) (*domain.Agent, error) {
			return found(h.agents.UpdatePerformance(c.Request.Context(), c.Param("id"), *in))
		},
	})
	ez.RegisterAction(write, ez.Action[domain.SchedulePatch, *domain.Agent]{
		Method: "PUT", Path: "/agents/:id/schedule", Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *domain.SchedulePatch) (*domain.Agent, error) {
			return found(h.agents.UpdateSchedule(c.Request.Context(), c.Param("id"), *in))
		},
	})
	ez.RegisterAction(write, ez.Action[transactionBody, *domain.Agent]{
		Method: "POST", Path: "/agents/:id/transactions", Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *transactionBody) (*domain.Agent, error) {
			tx, err := in.input()
			if err != nil {
				return nil, err
			}
			return found(h.agents.AddTransaction(c.Request.Context(), c.Param("id"), tx))
		},
	})
}
