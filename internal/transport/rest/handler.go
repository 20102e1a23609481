package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"talent-horizon/internal/applications"
	"talent-horizon/internal/clients"
	"talent-horizon/internal/domain"
	"talent-horizon/internal/logger"
	"talent-horizon/internal/profile"
	"talent-horizon/internal/service"
	"talent-horizon/internal/transport/auth"
	"talent-horizon/internal/transport/websocket"
)

const defaultRequestTimeout = 60 * time.Second

type ApplicationStores interface {
	Store(ctx context.Context, clientID string) (*applications.Store, error)
}

type ProfileStores interface {
	Store(ctx context.Context, clientID string) (*profile.Store, error)
}

type Exporter interface {
	ExportApplications(ctx context.Context, clientID string, src service.ApplicationSource, req service.ExportRequest) (service.ExportResult, error)
	GetExports(ctx context.Context, clientID string) ([]map[string]any, error)
	GetExport(ctx context.Context, exportID, clientID string) (map[string]any, error)
}

type Options struct {
	Applications ApplicationStores
	Profiles     ProfileStores
	Exports      Exporter
	// Files serves finished exports under /files. Optional.
	Files *clients.StorageClient
	// Hub accepts websocket subscriptions under /ws. Optional.
	Hub            *websocket.Hub
	Logger         *zap.Logger
	RequestTimeout time.Duration
}

type Handler struct {
	apps     ApplicationStores
	profiles ProfileStores
	exports  Exporter
	files    *clients.StorageClient
	hub      *websocket.Hub
	log      *zap.Logger
	timeout  time.Duration
}

func NewHandler(opts Options) *Handler {
	h := &Handler{
		apps:     opts.Applications,
		profiles: opts.Profiles,
		exports:  opts.Exports,
		files:    opts.Files,
		hub:      opts.Hub,
		log:      opts.Logger,
		timeout:  opts.RequestTimeout,
	}
	if h.log == nil {
		h.log = zap.NewNop()
	}
	if h.timeout <= 0 {
		h.timeout = defaultRequestTimeout
	}
	return h
}

func (h *Handler) InitRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		logger.RequestLogger(h.log),
		middleware.Recoverer,
	)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		Success(w, "ok", map[string]string{"status": "ok"})
	})

	if h.files != nil {
		r.Get("/files/{file}", h.serveFile)
	}

	requireClient := auth.ClientIDMiddleware(h.log, ErrorStatus)

	if h.hub != nil {
		r.With(requireClient).Get("/ws", h.serveWebSocket)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(requireClient, middleware.Timeout(h.timeout))

		r.Route("/applications", func(r chi.Router) {
			r.Use(h.withApplications)

			r.Get("/credit-card", listApplications(
				(*applications.Store).CreditCardApplications,
				applications.Filter.CreditCards,
				func(s string) bool { return domain.CreditCardStatus(s).Valid() },
			))
			r.Post("/credit-card", createApplication(h, ValidateNewCreditCard,
				(*applications.Store).AddCreditCardApplication))
			r.Get("/credit-card/{id}", getApplication((*applications.Store).GetCreditCardApplication))
			r.Patch("/credit-card/{id}", updateApplication(h, ValidateCreditCardPatch,
				(*applications.Store).UpdateCreditCardApplication,
				(*applications.Store).GetCreditCardApplication))

			r.Get("/tax-refund", listApplications(
				(*applications.Store).TaxRefundApplications,
				applications.Filter.TaxRefunds,
				func(s string) bool { return domain.TaxRefundStatus(s).Valid() },
			))
			r.Post("/tax-refund", createApplication(h, ValidateNewTaxRefund,
				(*applications.Store).AddTaxRefundApplication))
			r.Get("/tax-refund/{id}", getApplication((*applications.Store).GetTaxRefundApplication))
			r.Patch("/tax-refund/{id}", updateApplication(h, ValidateTaxRefundPatch,
				(*applications.Store).UpdateTaxRefundApplication,
				(*applications.Store).GetTaxRefundApplication))

			r.Post("/export", h.exportApplications)
		})

		r.Route("/exports", func(r chi.Router) {
			r.Get("/", h.listExports)
			r.Get("/{export_id}", h.getExport)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Use(h.withProfile)

			r.Get("/", h.getProfile)
			r.Patch("/", patchProfile(h, (*profile.Store).UpdateProfile))
			r.Patch("/overview", patchProfile(h, (*profile.Store).UpdateOverview))
			r.Patch("/location", patchProfile(h, (*profile.Store).UpdateLocation))
			r.Patch("/contact", patchProfile(h, (*profile.Store).UpdateContact))
			r.Patch("/preferences", patchProfile(h, (*profile.Store).UpdatePreferences))

			profileList(r, h, "skills", (*profile.Store).AddSkill,
				(*profile.Store).UpdateSkill, (*profile.Store).DeleteSkill)
			profileList(r, h, "experience", (*profile.Store).AddExperience,
				(*profile.Store).UpdateExperience, (*profile.Store).DeleteExperience)
			profileList(r, h, "education", (*profile.Store).AddEducation,
				(*profile.Store).UpdateEducation, (*profile.Store).DeleteEducation)
			profileList(r, h, "certifications", (*profile.Store).AddCertification,
				(*profile.Store).UpdateCertification, (*profile.Store).DeleteCertification)
			profileList(r, h, "portfolio", (*profile.Store).AddPortfolioProject,
				(*profile.Store).UpdatePortfolioProject, (*profile.Store).DeletePortfolioProject)
			profileList(r, h, "languages", (*profile.Store).AddLanguage,
				(*profile.Store).UpdateLanguage, (*profile.Store).DeleteLanguage)

			r.Patch("/languages/at/{index}", h.updateLanguageAt)
			r.Delete("/languages/at/{index}", h.deleteLanguageAt)
		})
	})

	return r
}

func (h *Handler) withApplications(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID, err := auth.GetClientID(r.Context())
		if err != nil {
			ErrorUnauthorized(w, "Unauthorized")
			return
		}

		st, err := h.apps.Store(r.Context(), clientID)
		if err != nil {
			h.log.Error("load applications failed", zap.String("client_id", clientID), zap.Error(err))
			ErrorInternal(w, "failed to load applications")
			return
		}
		next.ServeHTTP(w, r.WithContext(applications.WithStore(r.Context(), st)))
	})
}

func (h *Handler) withProfile(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID, err := auth.GetClientID(r.Context())
		if err != nil {
			ErrorUnauthorized(w, "Unauthorized")
			return
		}

		st, err := h.profiles.Store(r.Context(), clientID)
		if err != nil {
			h.log.Error("load profile failed", zap.String("client_id", clientID), zap.Error(err))
			ErrorInternal(w, "failed to load profile")
			return
		}
		next.ServeHTTP(w, r.WithContext(profile.WithStore(r.Context(), st)))
	})
}

// badRequest writes validation failures as 400 and reports whether err was
// one.
func badRequest(w http.ResponseWriter, err error) bool {
	var verr *ValidationError
	if errors.As(err, &verr) {
		ErrorValidation(w, verr)
		return true
	}
	return false
}

// saveFailed reports a write whose in-memory effect stands but whose
// snapshot did not reach storage.
func (h *Handler) saveFailed(w http.ResponseWriter, r *http.Request, err error) {
	clientID, _ := auth.GetClientID(r.Context())
	h.log.Error("persist failed",
		zap.String("client_id", clientID),
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Error(err),
	)
	ErrorInternal(w, "change applied but could not be saved")
}
