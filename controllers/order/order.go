package ordercontroller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/saqibam92/BlashBerry-nextjs/controllers/response"
	"github.com/saqibam92/BlashBerry-nextjs/middleware"
	"github.com/saqibam92/BlashBerry-nextjs/models"
	"github.com/saqibam92/BlashBerry-nextjs/services"
)

// -------- Request Structs --------

type orderLineRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gte=1"`
	Size      string `json:"size"`
}

type PlaceOrderRequest struct {
	Products        []orderLineRequest     `json:"products" binding:"required,min=1,dive"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	GuestEmail      string                 `json:"guestEmail"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

const IdempotencyKeyHeader = "Idempotency-Key"

// -------- Handlers --------

// PlaceOrderHandler accepts guest and signed-in checkouts. A signed-in
// caller's guestEmail is ignored. Replays of a known Idempotency-Key answer
// 200 with the original order instead of 201.
func PlaceOrderHandler(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, response.BindError(err))
			return
		}

		in := services.PlaceOrderInput{
			ShippingAddress: req.ShippingAddress,
			GuestEmail:      req.GuestEmail,
			IdempotencyKey:  c.GetHeader(IdempotencyKeyHeader),
		}
		for _, l := range req.Products {
			in.Lines = append(in.Lines, services.OrderLineInput{ProductID: l.ProductID, Quantity: l.Quantity, Size: l.Size})
		}
		if id, ok := middleware.Identity(c); ok {
			uid := id.UserID
			in.UserID = &uid
			in.GuestEmail = ""
		}

		order, created, err := orders.PlaceOrder(c.Request.Context(), in)
		if err != nil {
			response.Error(c, err)
			return
		}
		if created {
			response.Created(c, order)
			return
		}
		response.OK(c, order)
	}
}

func GetMyOrdersHandler(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := middleware.Identity(c)
		if !ok {
			response.Error(c, models.ErrUnauthorized)
			return
		}
		list, err := orders.ListUserOrders(c.Request.Context(), id.UserID)
		if err != nil {
			response.Error(c, err)
			return
		}
		if list == nil {
			list = []models.Order{}
		}
		response.OK(c, list)
	}
}

// GetOrderHandler serves /orders/:id to the owner or an admin.
func GetOrderHandler(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, ok := middleware.Identity(c)
		if !ok {
			response.Error(c, models.ErrUnauthorized)
			return
		}
		id, ok := response.IDParam(c, "id")
		if !ok {
			return
		}
		order, err := orders.GetOrder(c.Request.Context(), id, *viewer)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, order)
	}
}

// GetAllOrdersHandler is the admin order list. Query: status, page, limit
func GetAllOrdersHandler(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := models.OrderFilter{}
		if raw := c.Query("status"); raw != "" {
			status, err := models.ParseOrderStatus(raw)
			if err != nil {
				response.Error(c, err)
				return
			}
			f.Status = status
		}
		f.Page, _ = strconv.Atoi(c.Query("page"))
		f.Limit, _ = strconv.Atoi(c.Query("limit"))

		list, p, err := orders.ListOrders(c.Request.Context(), f)
		if err != nil {
			response.Error(c, err)
			return
		}
		if list == nil {
			list = []models.Order{}
		}
		response.Paginated(c, list, p)
	}
}

func UpdateOrderStatusHandler(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := response.IDParam(c, "id")
		if !ok {
			return
		}
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, response.BindError(err))
			return
		}
		order, err := orders.UpdateStatus(c.Request.Context(), id, req.Status)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, order)
	}
}
