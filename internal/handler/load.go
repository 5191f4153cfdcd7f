package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"loadtrack/internal/domain"
	"loadtrack/internal/service"
)

const timeFormat = "2006-01-02T15:04:05Z07:00"

// LoadHandler handles HTTP requests for loads.
type LoadHandler struct {
	loadService *service.LoadService
}

// NewLoadHandler creates a new LoadHandler.
func NewLoadHandler(loadService *service.LoadService) *LoadHandler {
	return &LoadHandler{loadService: loadService}
}

// CreateLoadRequest is the HTTP request body for creating a load.
type CreateLoadRequest struct {
	Origin          string     `json:"origin"`
	Destination     string     `json:"destination"`
	PickupDate      *time.Time `json:"pickup_date"`
	DeliveryDate    *time.Time `json:"delivery_date"`
	ClaimedMiles    int        `json:"claimed_miles"`
	PayAmount       float64    `json:"pay_amount"`
	DriverID        string     `json:"driver_id"`
	DispatchID      string     `json:"dispatch_id"`
	ReceivedReading int        `json:"received_reading"`
}

// AppendReadingRequest is the HTTP request body for recording an odometer
// reading.
type AppendReadingRequest struct {
	Stage   string `json:"stage"`
	Reading int    `json:"reading"`
}

// UpdateLoadRequest is the HTTP request body for a partial load update.
// Absent fields are left untouched.
type UpdateLoadRequest struct {
	Origin           *string                  `json:"origin"`
	Destination      *string                  `json:"destination"`
	PickupDate       *time.Time               `json:"pickup_date"`
	DeliveryDate     *time.Time               `json:"delivery_date"`
	ClaimedMiles     *int                     `json:"claimed_miles"`
	PayAmount        *float64                 `json:"pay_amount"`
	DriverID         *string                  `json:"driver_id"`
	DispatchID       *string                  `json:"dispatch_id"`
	OdometerReadings []domain.OdometerReading `json:"odometer_readings"`
	Fuel             *domain.FuelPurchase     `json:"fuel"`
	DaysUsed         *int                     `json:"days_used"`
	DailyTruckCost   *float64                 `json:"daily_truck_cost"`
	Tolls            *float64                 `json:"tolls"`
}

// BulkIDsRequest is the HTTP request body for bulk deletion.
type BulkIDsRequest struct {
	IDs []string `json:"ids"`
}

// BulkStatusRequest is the HTTP request body for a bulk status override.
type BulkStatusRequest struct {
	IDs    []string `json:"ids"`
	Status string   `json:"status"`
}

// BulkAssignRequest is the HTTP request body for bulk driver reassignment.
type BulkAssignRequest struct {
	IDs      []string `json:"ids"`
	DriverID string   `json:"driver_id"`
}

// ReadingResponse is an odometer reading in load responses.
type ReadingResponse struct {
	Stage     string `json:"stage"`
	Reading   int    `json:"reading"`
	Timestamp string `json:"timestamp"`
}

// LoadResponse is the HTTP response for load operations.
type LoadResponse struct {
	ID               string                `json:"id"`
	Status           string                `json:"status"`
	Origin           string                `json:"origin"`
	Destination      string                `json:"destination"`
	PickupDate       string                `json:"pickup_date,omitempty"`
	DeliveryDate     string                `json:"delivery_date,omitempty"`
	ClaimedMiles     int                   `json:"claimed_miles"`
	PayAmount        float64               `json:"pay_amount"`
	DriverID         string                `json:"driver_id"`
	DispatchID       string                `json:"dispatch_id"`
	OdometerReadings []ReadingResponse     `json:"odometer_readings"`
	Fuel             *domain.FuelPurchase  `json:"fuel,omitempty"`
	DaysUsed         int                   `json:"days_used,omitempty"`
	DailyTruckCost   float64               `json:"daily_truck_cost,omitempty"`
	Tolls            float64               `json:"tolls,omitempty"`
	MileageAlerts    []domain.MileageAlert `json:"mileage_alerts"`
	CreatedAt        string                `json:"created_at"`
	CompletedAt      string                `json:"completed_at,omitempty"`
}

func toLoadResponse(load *domain.Load) LoadResponse {
	resp := LoadResponse{
		ID:             load.ID,
		Status:         string(load.Status),
		Origin:         load.Origin,
		Destination:    load.Destination,
		ClaimedMiles:   load.ClaimedMiles,
		PayAmount:      load.PayAmount,
		DriverID:       load.DriverID,
		DispatchID:     load.DispatchID,
		Fuel:           load.Fuel,
		DaysUsed:       load.DaysUsed,
		DailyTruckCost: load.DailyTruckCost,
		Tolls:          load.Tolls,
		MileageAlerts:  load.MileageAlerts,
		CreatedAt:      load.CreatedAt.Format(timeFormat),
	}

	for _, r := range load.OdometerReadings {
		resp.OdometerReadings = append(resp.OdometerReadings, ReadingResponse{
			Stage:     string(r.Stage),
			Reading:   r.Reading,
			Timestamp: r.Timestamp.Format(timeFormat),
		})
	}

	if !load.PickupDate.IsZero() {
		resp.PickupDate = load.PickupDate.Format(timeFormat)
	}
	if !load.DeliveryDate.IsZero() {
		resp.DeliveryDate = load.DeliveryDate.Format(timeFormat)
	}
	if !load.CompletedAt.IsZero() {
		resp.CompletedAt = load.CompletedAt.Format(timeFormat)
	}

	return resp
}

// CreateLoad handles POST /v1/loads
func (h *LoadHandler) CreateLoad(c *gin.Context) {
	var req CreateLoadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	svcReq := service.CreateLoadRequest{
		Origin:          req.Origin,
		Destination:     req.Destination,
		ClaimedMiles:    req.ClaimedMiles,
		PayAmount:       req.PayAmount,
		DriverID:        req.DriverID,
		DispatchID:      req.DispatchID,
		ReceivedReading: req.ReceivedReading,
	}
	if req.PickupDate != nil {
		svcReq.PickupDate = *req.PickupDate
	}
	if req.DeliveryDate != nil {
		svcReq.DeliveryDate = *req.DeliveryDate
	}

	load, err := h.loadService.Create(c.Request.Context(), svcReq)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toLoadResponse(load))
}

// GetAll handles GET /v1/loads
func (h *LoadHandler) GetAll(c *gin.Context) {
	loads := h.loadService.List()

	var response []LoadResponse
	for i := range loads {
		response = append(response, toLoadResponse(&loads[i]))
	}

	c.JSON(http.StatusOK, response)
}

// GetLoad handles GET /v1/loads/:id
func (h *LoadHandler) GetLoad(c *gin.Context) {
	load, err := h.loadService.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toLoadResponse(load))
}

// UpdateLoad handles PATCH /v1/loads/:id
func (h *LoadHandler) UpdateLoad(c *gin.Context) {
	var req UpdateLoadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	load, err := h.loadService.Update(c.Request.Context(), c.Param("id"), service.UpdateLoadRequest{
		Origin:           req.Origin,
		Destination:      req.Destination,
		PickupDate:       req.PickupDate,
		DeliveryDate:     req.DeliveryDate,
		ClaimedMiles:     req.ClaimedMiles,
		PayAmount:        req.PayAmount,
		DriverID:         req.DriverID,
		DispatchID:       req.DispatchID,
		OdometerReadings: req.OdometerReadings,
		Fuel:             req.Fuel,
		DaysUsed:         req.DaysUsed,
		DailyTruckCost:   req.DailyTruckCost,
		Tolls:            req.Tolls,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	// Unknown id is a silent no-op for idempotent client retries.
	if load == nil {
		c.Status(http.StatusNoContent)
		return
	}

	respondJSON(c, http.StatusOK, toLoadResponse(load))
}

// DeleteLoad handles DELETE /v1/loads/:id
func (h *LoadHandler) DeleteLoad(c *gin.Context) {
	if err := h.loadService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AppendReading handles POST /v1/loads/:id/readings
func (h *LoadHandler) AppendReading(c *gin.Context) {
	var req AppendReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	load, err := h.loadService.AppendOdometerReading(c.Request.Context(), service.AppendReadingRequest{
		LoadID:  c.Param("id"),
		Stage:   domain.ReadingStage(req.Stage),
		Reading: req.Reading,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toLoadResponse(load))
}

// GetMetrics handles GET /v1/loads/:id/metrics
func (h *LoadHandler) GetMetrics(c *gin.Context) {
	load, err := h.loadService.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, service.CalculateMetrics(load))
}

// GetAlerts handles GET /v1/loads/:id/alerts
func (h *LoadHandler) GetAlerts(c *gin.Context) {
	load, err := h.loadService.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, service.CalculateMileageAlerts(load))
}

// BulkDelete handles POST /v1/loads/bulk/delete
func (h *LoadHandler) BulkDelete(c *gin.Context) {
	var req BulkIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.loadService.BulkDelete(c.Request.Context(), req.IDs); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// BulkUpdateStatus handles POST /v1/loads/bulk/status
func (h *LoadHandler) BulkUpdateStatus(c *gin.Context) {
	var req BulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.loadService.BulkUpdateStatus(c.Request.Context(), req.IDs, domain.LoadStatus(req.Status)); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// BulkAssignDriver handles POST /v1/loads/bulk/assign
func (h *LoadHandler) BulkAssignDriver(c *gin.Context) {
	var req BulkAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.loadService.BulkAssignDriver(c.Request.Context(), req.IDs, req.DriverID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
