package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/clinicdesk/internal/server/models"
	"github.com/dmitrijs2005/clinicdesk/internal/server/services"
	"github.com/labstack/echo/v4"
)

type RecordsService interface {
	Patients(ctx context.Context) ([]models.Patient, error)
	Patient(ctx context.Context, id int64) (*models.Patient, error)
	CreatePatient(ctx context.Context, np services.NewPatient) (*models.Patient, error)
	DeletePatient(ctx context.Context, id int64) error
	UpdatePatientHISID(ctx context.Context, id int64, hisPatientID string) error

	Practitioners(ctx context.Context) ([]models.Practitioner, error)
	CreatePractitioner(ctx context.Context, np services.NewPractitioner) (*models.Practitioner, error)

	Encounters(ctx context.Context) ([]models.Encounter, error)
	EncountersByPractitioner(ctx context.Context, practitionerID string) ([]models.Encounter, error)
	CreateEncounter(ctx context.Context, ne services.NewEncounter) (*models.Encounter, error)
	UpdateEncounterStatus(ctx context.Context, id string, status models.EncounterStatus) error
}

type RecordsHandler struct {
	svc RecordsService
}

func NewRecordsHandler(svc RecordsService) *RecordsHandler {
	return &RecordsHandler{svc: svc}
}

func (h *RecordsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/patients", h.ListPatients)
	g.POST("/patients", h.CreatePatient)
	g.GET("/patients/:id", h.GetPatient)
	g.DELETE("/patients/:id", h.DeletePatient)
	g.PATCH("/patients/:id/his-id", h.UpdatePatientHISID)

	g.GET("/practitioners", h.ListPractitioners)
	g.POST("/practitioners", h.CreatePractitioner)

	g.GET("/encounters", h.ListEncounters)
	g.POST("/encounters", h.CreateEncounter)
	g.GET("/encounters/:practitionerId", h.ListEncountersByPractitioner)
	g.PATCH("/encounters/:id", h.UpdateEncounterStatus)
}

func patientID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	return id, nil
}

func (h *RecordsHandler) ListPatients(c echo.Context) error {
	list, err := h.svc.Patients(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *RecordsHandler) GetPatient(c echo.Context) error {
	id, err := patientID(c)
	if err != nil {
		return err
	}
	p, err := h.svc.Patient(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *RecordsHandler) CreatePatient(c echo.Context) error {
	var req services.NewPatient
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	p, err := h.svc.CreatePatient(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *RecordsHandler) DeletePatient(c echo.Context) error {
	id, err := patientID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeletePatient(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Patient deleted successfully"})
}

func (h *RecordsHandler) UpdatePatientHISID(c echo.Context) error {
	id, err := patientID(c)
	if err != nil {
		return err
	}
	var req struct {
		HISPatientID string `json:"his_patient_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.svc.UpdatePatientHISID(c.Request().Context(), id, req.HISPatientID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "HIS id updated successfully"})
}

func (h *RecordsHandler) ListPractitioners(c echo.Context) error {
	list, err := h.svc.Practitioners(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *RecordsHandler) CreatePractitioner(c echo.Context) error {
	var req services.NewPractitioner
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	p, err := h.svc.CreatePractitioner(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *RecordsHandler) ListEncounters(c echo.Context) error {
	list, err := h.svc.Encounters(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *RecordsHandler) ListEncountersByPractitioner(c echo.Context) error {
	list, err := h.svc.EncountersByPractitioner(c.Request().Context(), c.Param("practitionerId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *RecordsHandler) CreateEncounter(c echo.Context) error {
	var req services.NewEncounter
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	e, err := h.svc.CreateEncounter(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]string{"id": e.ID})
}

func (h *RecordsHandler) UpdateEncounterStatus(c echo.Context) error {
	var req struct {
		Status models.EncounterStatus `json:"status"`
	}
	if err := c.Bind(&req); err != nil || req.Status == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "status is required")
	}
	if err := h.svc.UpdateEncounterStatus(c.Request().Context(), c.Param("id"), req.Status); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Status updated successfully"})
}
