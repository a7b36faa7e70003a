package controller

import (
	"errors"
	"net/http"

	"akaraka_backend/internal/service"
	"akaraka_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	PaymentService *service.PaymentService
}

func NewPaymentController(paymentService *service.PaymentService) *PaymentController {
	return &PaymentController{PaymentService: paymentService}
}

// Plans godoc
// @Summary Subscription plans
// @Tags payments
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/payments/plans [get]
func (c *PaymentController) Plans(ctx *gin.Context) {
	plans, err := c.PaymentService.Plans()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, plans)
}

// Checkout godoc
// @Summary Subscribe with a card
// @Description Charges a stripe card token and activates the plan
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CheckoutInput true "Plan and card token"
// @Success 201 {object} util.Response
// @Failure 402 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/payments/checkout [post]
func (c *PaymentController) Checkout(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.CheckoutInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	payment, err := c.PaymentService.Checkout(claims.UserID, input)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrPlanNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPaymentFailed):
			util.Error(ctx, http.StatusPaymentRequired, "Your card was declined")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, payment)
}

// Cancel godoc
// @Summary Cancel my subscription
// @Description Turns off auto-renew; access continues until the period ends
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/payments/subscription [delete]
func (c *PaymentController) Cancel(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sub, err := c.PaymentService.Cancel(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrPlanNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, sub)
}

// Status godoc
// @Summary My subscription
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/payments/subscription [get]
func (c *PaymentController) Status(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sub, err := c.PaymentService.Status(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, sub)
}

// History godoc
// @Summary My payment history
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/payments/history [get]
func (c *PaymentController) History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page, limit := pagination(ctx)
	payments, total, err := c.PaymentService.History(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: payments, Total: total, Page: page, Limit: limit})
}
