package handler

import (
	"errors"

	creditapp "github.com/gasflow/backend/internal/application/credit"
	"github.com/gasflow/backend/internal/domain/shared"
	"github.com/gasflow/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreditHandler handles customer credit API endpoints
type CreditHandler struct {
	BaseHandler
	creditService *creditapp.CreditService
}

// NewCreditHandler creates a new CreditHandler
func NewCreditHandler(creditService *creditapp.CreditService) *CreditHandler {
	return &CreditHandler{
		creditService: creditService,
	}
}

// SaveCreditRequest upserts a customer's credit limit
type SaveCreditRequest struct {
	CustomerID  uuid.UUID       `json:"customer_id" binding:"required"`
	CreditLimit decimal.Decimal `json:"credit_limit" binding:"required"`
}

// CreditPaymentRequest records a payment against a customer's credit
type CreditPaymentRequest struct {
	CustomerID uuid.UUID       `json:"customer_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Reference  string          `json:"reference"`
	Remarks    string          `json:"remarks"`
}

// ListAccounts returns credit accounts with pagination
func (h *CreditHandler) ListAccounts(c *gin.Context) {
	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := shared.Filter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
		OrderBy:  listReq.OrderBy,
		OrderDir: listReq.OrderDir,
		Search:   listReq.Search,
	}

	accounts, total, err := h.creditService.ListAccounts(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, accounts, total, filter.Page, filter.PageSize)
}

// GetAccount returns one customer's credit account
func (h *CreditHandler) GetAccount(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("customerId"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	account, err := h.creditService.GetAccount(c.Request.Context(), customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, account)
}

// SaveLimit sets a customer's credit limit, opening the account on first use
func (h *CreditHandler) SaveLimit(c *gin.Context) {
	var req SaveCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	account, err := h.creditService.SetLimit(c.Request.Context(), req.CustomerID, creditapp.SetLimitRequest{CreditLimit: req.CreditLimit}, actorID)
	if errors.Is(err, shared.ErrNotFound) {
		account, err = h.creditService.OpenAccount(c.Request.Context(), creditapp.OpenAccountRequest{
			CustomerID:  req.CustomerID,
			CreditLimit: req.CreditLimit,
		}, actorID)
	}
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, account)
}

// RecordPayment posts a payment against a customer's outstanding credit
func (h *CreditHandler) RecordPayment(c *gin.Context) {
	var req CreditPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	account, err := h.creditService.RecordPayment(c.Request.Context(), req.CustomerID, creditapp.RecordPaymentRequest{
		Amount:    req.Amount,
		Reference: req.Reference,
		Remarks:   req.Remarks,
	}, actorID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, account)
}

// ListTransactions returns one customer's credit ledger, newest first
func (h *CreditHandler) ListTransactions(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("customerId"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := shared.Filter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
	}

	transactions, err := h.creditService.ListTransactions(c.Request.Context(), customerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, transactions)
}

// PaymentHistory returns payment ledger entries, optionally narrowed to one
// customer via the customer_id query parameter
func (h *CreditHandler) PaymentHistory(c *gin.Context) {
	var customerID *uuid.UUID
	if raw := c.Query("customer_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid customer ID format")
			return
		}
		customerID = &id
	}

	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := shared.Filter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
	}

	payments, err := h.creditService.ListPayments(c.Request.Context(), customerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, payments)
}

// Deactivate closes a customer's credit account for new debits
func (h *CreditHandler) Deactivate(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("customerId"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	account, err := h.creditService.Deactivate(c.Request.Context(), customerID, actorID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, account)
}
