package dto

import (
	"github.com/quickdesk/helpdesk-api/internal/service"
)

// DashboardResponse is the outbound dashboard shape.
type DashboardResponse struct {
	Stats         service.DashboardStats `json:"stats"`
	RecentTickets []TicketResponse       `json:"recentTickets"`
}

// NewDashboardResponse maps an aggregation result.
func NewDashboardResponse(dashboard *service.Dashboard) DashboardResponse {
	return DashboardResponse{
		Stats:         dashboard.Stats,
		RecentTickets: NewTicketResponses(dashboard.Recent),
	}
}

// AgentDashboardStats splits the roll-up into the whole queue and the
// caller's own assignments.
type AgentDashboardStats struct {
	All service.DashboardStats `json:"all"`
	My  service.DashboardStats `json:"my"`
}

// AgentDashboardTickets splits the recent lists the same way.
type AgentDashboardTickets struct {
	All []TicketResponse `json:"all"`
	My  []TicketResponse `json:"my"`
}

// AgentDashboardResponse is the outbound agent dashboard shape.
type AgentDashboardResponse struct {
	Stats         AgentDashboardStats   `json:"stats"`
	RecentTickets AgentDashboardTickets `json:"recentTickets"`
}

// NewAgentDashboardResponse maps the dual-scope aggregation result.
func NewAgentDashboardResponse(dashboard *service.AgentDashboard) AgentDashboardResponse {
	return AgentDashboardResponse{
		Stats: AgentDashboardStats{
			All: dashboard.All.Stats,
			My:  dashboard.My.Stats,
		},
		RecentTickets: AgentDashboardTickets{
			All: NewTicketResponses(dashboard.All.Recent),
			My:  NewTicketResponses(dashboard.My.Recent),
		},
	}
}
