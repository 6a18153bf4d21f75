package profiles

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"autofill-backend/internal/shared/auth"
	"autofill-backend/internal/shared/server/middleware"
	"autofill-backend/internal/shared/server/respond"
)

// Handler exposes profile endpoints.
type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

// RegisterRoutes attaches profile routes to the group.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/auth/register", h.Register)
	r.GET("/profile", h.Get)
	r.PATCH("/profile", h.Patch)
}

type registerRequest struct {
	Email                string `json:"email"`
	CandidateName        string `json:"candidateName"`
	HasChangedName       bool   `json:"hasChangedName"`
	ChangedName          string `json:"changedName"`
	Gender               string `json:"gender"`
	DOB                  string `json:"dob"`
	FatherName           string `json:"fatherName"`
	MotherName           string `json:"motherName"`
	HasAadhaar           bool   `json:"hasAadhaar"`
	AadhaarNumber        string `json:"aadhaarNumber"`
	EducationBoard       string `json:"educationBoard"`
	RollNumber           string `json:"rollNumber"`
	YearOfPassing        string `json:"yearOfPassing"`
	HighestQualification string `json:"highestQualification"`
	MobileNumber         string `json:"mobileNumber"`
}

type profileResponse struct {
	Profile Profile `json:"profile"`
	Token   string  `json:"token,omitempty"`
}

// Register handles POST /auth/register.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "request body must be valid JSON", nil)
		return
	}

	profile, err := h.Service.Register(c.Request.Context(), Profile{
		Email:                req.Email,
		CandidateName:        req.CandidateName,
		HasChangedName:       req.HasChangedName,
		ChangedName:          req.ChangedName,
		Gender:               req.Gender,
		DOB:                  req.DOB,
		FatherName:           req.FatherName,
		MotherName:           req.MotherName,
		HasAadhaar:           req.HasAadhaar,
		AadhaarNumber:        req.AadhaarNumber,
		EducationBoard:       req.EducationBoard,
		RollNumber:           req.RollNumber,
		YearOfPassing:        req.YearOfPassing,
		HighestQualification: req.HighestQualification,
		MobileNumber:         req.MobileNumber,
	})
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "invalid_request", "email and candidateName are required", nil)
		return
	case errors.Is(err, ErrEmailTaken):
		respond.Error(c, http.StatusConflict, "email_taken", "a profile with this email already exists", nil)
		return
	case err != nil:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not create profile", nil)
		return
	}

	token, err := auth.SignJWT(auth.Claims{Sub: profile.ID, Email: profile.Email})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not issue token", nil)
		return
	}
	respond.Created(c, profileResponse{Profile: profile, Token: token})
}

// Get handles GET /profile.
func (h *Handler) Get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	profile, err := h.Service.Get(c.Request.Context(), userID)
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
		return
	case err != nil:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not load profile", nil)
		return
	}
	respond.JSON(c, http.StatusOK, profileResponse{Profile: profile})
}

type patchRequest struct {
	CandidateName        *string `json:"candidateName"`
	HasChangedName       *bool   `json:"hasChangedName"`
	ChangedName          *string `json:"changedName"`
	Gender               *string `json:"gender"`
	DOB                  *string `json:"dob"`
	FatherName           *string `json:"fatherName"`
	MotherName           *string `json:"motherName"`
	HasAadhaar           *bool   `json:"hasAadhaar"`
	AadhaarNumber        *string `json:"aadhaarNumber"`
	EducationBoard       *string `json:"educationBoard"`
	RollNumber           *string `json:"rollNumber"`
	YearOfPassing        *string `json:"yearOfPassing"`
	HighestQualification *string `json:"highestQualification"`
	MobileNumber         *string `json:"mobileNumber"`
}

// Patch handles PATCH /profile.
func (h *Handler) Patch(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req patchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "request body must be valid JSON", nil)
		return
	}

	profile, err := h.Service.Update(c.Request.Context(), userID, PartialUpdate{
		CandidateName:        req.CandidateName,
		HasChangedName:       req.HasChangedName,
		ChangedName:          req.ChangedName,
		Gender:               req.Gender,
		DOB:                  req.DOB,
		FatherName:           req.FatherName,
		MotherName:           req.MotherName,
		HasAadhaar:           req.HasAadhaar,
		AadhaarNumber:        req.AadhaarNumber,
		EducationBoard:       req.EducationBoard,
		RollNumber:           req.RollNumber,
		YearOfPassing:        req.YearOfPassing,
		HighestQualification: req.HighestQualification,
		MobileNumber:         req.MobileNumber,
	})
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
		return
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "invalid_request", "missing user identity", nil)
		return
	case err != nil:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not update profile", nil)
		return
	}
	respond.JSON(c, http.StatusOK, profileResponse{Profile: profile})
}
