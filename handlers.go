package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"fintrack/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const defaultPageLimit = 10

// Server wires the HTTP surface to the store and auth service.
type Server struct {
	store Store
	auth  *Auth
}

func NewServer(store Store, auth *Auth) *Server {
	return &Server{store: store, auth: auth}
}

func (s *Server) setupRoutes(r *gin.Engine) {
	r.POST("/register", s.registerHandler)
	r.POST("/login", s.loginHandler)
	authGroup := r.Group("")
	authGroup.Use(s.bearerAuthMiddleware())
	authGroup.POST("/transactions", s.createTransactionHandler)
	authGroup.GET("/transactions", s.listTransactionsHandler)
	authGroup.GET("/transactions/:id", s.getTransactionHandler)
	authGroup.PUT("/transactions/:id", s.updateTransactionHandler)
	authGroup.DELETE("/transactions/:id", s.deleteTransactionHandler)
	authGroup.GET("/summary", s.summaryHandler)
	authGroup.GET("/reports/monthly", s.monthlyReportHandler)
}

// bearerAuthMiddleware enforces the auth convention carried over from the
// original API: a missing Authorization header is 401, a present but
// invalid/expired/tampered token is 403.
func (s *Server) bearerAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			c.Abort()
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		userID, username, err := s.auth.VerifyToken(tokenString)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}
		c.Set("user_id", userID)
		c.Set("username", username)
		c.Next()
	}
}

// callerID returns the authenticated user's id set by the middleware.
func callerID(c *gin.Context) uint {
	v, _ := c.Get("user_id")
	id, _ := v.(uint)
	return id
}

func (s *Server) registerHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := s.auth.Register(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrDuplicateUser) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Error().Err(err).Msg("registration failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "username": req.Username})
}

func (s *Server) loginHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	token, err := s.auth.Login(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidCredentials.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"auth": true, "token": token})
}

// transactionRequest is the body of create and update. Type is restricted to
// the two values the summary aggregates over, so nothing is silently dropped
// from totals.
type transactionRequest struct {
	Type        string  `json:"type" binding:"required,oneof=income expense"`
	Category    string  `json:"category" binding:"required"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date" binding:"required,datetime=2006-01-02"`
	Description string  `json:"description"`
}

func (s *Server) createTransactionHandler(c *gin.Context) {
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t := models.Transaction{
		UserID:      callerID(c),
		Type:        req.Type,
		Category:    req.Category,
		Amount:      req.Amount,
		Date:        req.Date,
		Description: req.Description,
	}
	id, err := s.store.CreateTransaction(&t)
	if err != nil {
		logger.Error().Err(err).Msg("create transaction failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (s *Server) listTransactionsHandler(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageLimit)))
	if err != nil || limit < 1 {
		limit = defaultPageLimit
	}
	items, err := s.store.ListTransactions(callerID(c), page, limit)
	if err != nil {
		logger.Error().Err(err).Msg("list transactions failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	if items == nil {
		items = []models.Transaction{}
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) getTransactionHandler(c *gin.Context) {
	id, ok := transactionID(c)
	if !ok {
		return
	}
	t, err := s.store.FindTransaction(id, callerID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
			return
		}
		logger.Error().Err(err).Msg("get transaction failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) updateTransactionHandler(c *gin.Context) {
	id, ok := transactionID(c)
	if !ok {
		return
	}
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rows, err := s.store.UpdateTransaction(id, callerID(c), TransactionFields{
		Type:        req.Type,
		Category:    req.Category,
		Amount:      req.Amount,
		Date:        req.Date,
		Description: req.Description,
	})
	if err != nil {
		logger.Error().Err(err).Msg("update transaction failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "transaction updated"})
}

func (s *Server) deleteTransactionHandler(c *gin.Context) {
	id, ok := transactionID(c)
	if !ok {
		return
	}
	rows, err := s.store.DeleteTransaction(id, callerID(c))
	if err != nil {
		logger.Error().Err(err).Msg("delete transaction failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "transaction deleted"})
}

func (s *Server) summaryHandler(c *gin.Context) {
	sum, err := s.store.SumByType(callerID(c), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		logger.Error().Err(err).Msg("summary failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (s *Server) monthlyReportHandler(c *gin.Context) {
	results, err := s.store.MonthlyTotals(callerID(c))
	if err != nil {
		logger.Error().Err(err).Msg("monthly report failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	if results == nil {
		results = []MonthlyTotal{}
	}
	c.JSON(http.StatusOK, results)
}

// transactionID parses the :id path parameter. A non-numeric id can never
// match a row, so it is reported as not found.
func transactionID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
		return 0, false
	}
	return uint(id), true
}
