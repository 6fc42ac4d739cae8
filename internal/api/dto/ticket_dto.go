package dto

import (
	"time"

	"github.com/quickdesk/helpdesk-api/internal/domain"
	"github.com/quickdesk/helpdesk-api/internal/service"
)

// CreateTicketRequest payload. UserEmail is only honored on the agent
// surface when filing on a customer's behalf.
type CreateTicketRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Category    string                `json:"category"`
	Priority    domain.TicketPriority `json:"priority"`
	Attachments []domain.Attachment   `json:"attachments"`
	Tags        []string              `json:"tags"`
	UserEmail   string                `json:"userEmail"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status domain.TicketStatus `json:"status"`
}

// AssignTicketRequest payload. Empty agentId assigns to the caller.
type AssignTicketRequest struct {
	AgentID    string `json:"agentId"`
	AgentEmail string `json:"agentEmail"`
}

// CreateReplyRequest payload.
type CreateReplyRequest struct {
	Message string `json:"message"`
}

// ShareTicketRequest payload.
type ShareTicketRequest struct {
	SharedWith []string `json:"sharedWith"`
	Note       string   `json:"note"`
}

// VoteRequest payload.
type VoteRequest struct {
	Type domain.VoteType `json:"type"`
}

// TicketResponse is the full outbound ticket shape.
type TicketResponse struct {
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Status      domain.TicketStatus   `json:"status"`
	Category    string                `json:"category"`
	Priority    domain.TicketPriority `json:"priority"`
	UserID      string                `json:"userId"`
	UserEmail   string                `json:"userEmail"`
	AgentID     *string               `json:"agentId"`
	AgentEmail  *string               `json:"agentEmail"`
	Attachments []domain.Attachment   `json:"attachments"`
	Tags        []string              `json:"tags"`
	Upvotes     int                   `json:"upvotes"`
	Downvotes   int                   `json:"downvotes"`
	ReplyCount  int                   `json:"replyCount"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

// ReplyResponse is one thread entry.
type ReplyResponse struct {
	ID        string    `json:"id"`
	TicketID  string    `json:"ticketId"`
	UserID    string    `json:"userId"`
	UserEmail string    `json:"userEmail"`
	Message   string    `json:"message"`
	IsAgent   bool      `json:"isAgent"`
	CreatedAt time.Time `json:"createdAt"`
}

// ShareResponse is one hand-off record.
type ShareResponse struct {
	ID         string    `json:"id"`
	TicketID   string    `json:"ticketId"`
	SharedBy   string    `json:"sharedBy"`
	SharedWith []string  `json:"sharedWith"`
	Note       string    `json:"note"`
	SharedAt   time.Time `json:"sharedAt"`
}

// TicketListResponse carries one page with its pagination envelope.
type TicketListResponse struct {
	Tickets    []TicketResponse   `json:"tickets"`
	Pagination service.Pagination `json:"pagination"`
}

// SharedTicketsResponse pairs the shares naming the agent with the tickets.
type SharedTicketsResponse struct {
	Shares  []ShareResponse  `json:"shares"`
	Tickets []TicketResponse `json:"tickets"`
}

// NewTicketResponse maps a domain ticket.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	attachments := ticket.Attachments
	if attachments == nil {
		attachments = []domain.Attachment{}
	}
	tags := ticket.Tags
	if tags == nil {
		tags = []string{}
	}
	return TicketResponse{
		ID:          ticket.ID,
		Title:       ticket.Title,
		Description: ticket.Description,
		Status:      ticket.Status,
		Category:    ticket.Category,
		Priority:    ticket.Priority,
		UserID:      ticket.UserID,
		UserEmail:   ticket.UserEmail,
		AgentID:     ticket.AgentID,
		AgentEmail:  ticket.AgentEmail,
		Attachments: attachments,
		Tags:        tags,
		Upvotes:     ticket.Upvotes,
		Downvotes:   ticket.Downvotes,
		ReplyCount:  ticket.ReplyCount,
		CreatedAt:   ticket.CreatedAt,
		UpdatedAt:   ticket.UpdatedAt,
	}
}

// NewTicketResponses maps a slice, never returning nil.
func NewTicketResponses(tickets []domain.Ticket) []TicketResponse {
	out := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		out = append(out, NewTicketResponse(&tickets[i]))
	}
	return out
}

// NewReplyResponse maps a domain reply.
func NewReplyResponse(reply *domain.TicketReply) ReplyResponse {
	return ReplyResponse{
		ID:        reply.ID,
		TicketID:  reply.TicketID,
		UserID:    reply.UserID,
		UserEmail: reply.UserEmail,
		Message:   reply.Message,
		IsAgent:   reply.IsAgent,
		CreatedAt: reply.CreatedAt,
	}
}

// NewReplyResponses maps a slice, never returning nil.
func NewReplyResponses(replies []domain.TicketReply) []ReplyResponse {
	out := make([]ReplyResponse, 0, len(replies))
	for i := range replies {
		out = append(out, NewReplyResponse(&replies[i]))
	}
	return out
}

// NewShareResponse maps a domain share.
func NewShareResponse(share *domain.TicketShare) ShareResponse {
	return ShareResponse{
		ID:         share.ID,
		TicketID:   share.TicketID,
		SharedBy:   share.SharedBy,
		SharedWith: share.SharedWith,
		Note:       share.Note,
		SharedAt:   share.SharedAt,
	}
}

// NewShareResponses maps a slice, never returning nil.
func NewShareResponses(shares []domain.TicketShare) []ShareResponse {
	out := make([]ShareResponse, 0, len(shares))
	for i := range shares {
		out = append(out, NewShareResponse(&shares[i]))
	}
	return out
}
