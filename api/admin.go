package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Domenick1991/flightshop/internal/admin"
	"github.com/Domenick1991/flightshop/internal/domain"
	"github.com/Domenick1991/flightshop/internal/service/stats"
	"github.com/Domenick1991/flightshop/internal/session"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CatalogInvalidator drops cached flight listings after catalog edits.
type CatalogInvalidator interface {
	InvalidateCatalog(ctx context.Context) error
}

type AdminHandler struct {
	stats    stats.StatsUseCase
	sessions session.Store
	db       *gorm.DB
	catalog  CatalogInvalidator
}

// NewAdminHandler accepts a nil catalog when listings are not cached.
func NewAdminHandler(stats stats.StatsUseCase, sessions session.Store, db *gorm.DB, catalog CatalogInvalidator) *AdminHandler {
	return &AdminHandler{stats: stats, sessions: sessions, db: db, catalog: catalog}
}

// Register mounts the dashboard and one CRUD resource per entity. The caller
// is expected to guard router with RequireAdmin.
func (h *AdminHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.index)
	router.GET("/stats", h.revenue)
	router.GET("/logout", h.logout)

	if h.db == nil {
		return
	}
	resources := router.Group("/api")
	changed := h.catalogChanged
	registerResource[domain.Flight](resources, admin.NewStore(h.db, admin.Flights), changed)
	registerResource[domain.FlightRoute](resources, admin.NewStore(h.db, admin.FlightRoutes), changed)
	registerResource[domain.Plane](resources, admin.NewStore(h.db, admin.Planes), changed)
	registerResource[domain.Airport](resources, admin.NewStore(h.db, admin.Airports), changed)
	registerResource[domain.Ticket](resources, admin.NewStore(h.db, admin.Tickets), nil)
	registerResource[domain.Luggage](resources, admin.NewStore(h.db, admin.Luggage), nil)
	registerResource[domain.Cancellation](resources, admin.NewStore(h.db, admin.Cancellations), nil)
	registerResource[domain.Payment](resources, admin.NewStore(h.db, admin.Payments), nil)
	registerResource[domain.Seat](resources, admin.NewStore(h.db, admin.Seats), nil)
	registerResource[domain.FlightSchedule](resources, admin.NewStore(h.db, admin.FlightSchedules), nil)
	registerResource[domain.Company](resources, admin.NewStore(h.db, admin.Companies), changed)
	registerResource[domain.IntermediateAirport](resources, admin.NewStore(h.db, admin.IntermediateAirports), nil)
}

func (h *AdminHandler) index(c *gin.Context) {
	counts, err := h.stats.TicketCounts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticket_stats": counts})
}

func (h *AdminHandler) revenue(c *gin.Context) {
	report, err := h.stats.Revenue(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *AdminHandler) logout(c *gin.Context) {
	logout(c, h.sessions)
}

// catalogChanged runs after writes to entities shown in flight listings.
func (h *AdminHandler) catalogChanged(ctx context.Context) {
	if h.catalog == nil {
		return
	}
	if err := h.catalog.InvalidateCatalog(ctx); err != nil {
		slog.WarnContext(ctx, "invalidate flight cache", "error", err)
	}
}

// CRUDStore is the part of admin.Store the HTTP layer uses.
type CRUDStore[T any] interface {
	Resource() admin.Resource[T]
	List(ctx context.Context, q admin.ListQuery) (*admin.ListResult[T], error)
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, id int64, item *T) error
	Delete(ctx context.Context, id int64) error
}

// registerResource mounts list/get/create/update/delete for one entity.
// onWrite, when set, runs after every successful create, update or delete.
func registerResource[T any](router *gin.RouterGroup, store CRUDStore[T], onWrite func(context.Context)) {
	res := store.Resource()
	group := router.Group("/" + res.Name)
	written := func(c *gin.Context) {
		if onWrite != nil {
			onWrite(c.Request.Context())
		}
	}

	group.GET("", func(c *gin.Context) {
		page, err := intQuery(c, "page", 1)
		if err != nil {
			badRequest(c, "page must be an integer")
			return
		}
		size, err := intQuery(c, "page_size", 0)
		if err != nil {
			badRequest(c, "page_size must be an integer")
			return
		}
		filters := make(map[string]string, len(res.Filters))
		for param := range res.Filters {
			if v, ok := c.GetQuery(param); ok {
				filters[param] = v
			}
		}

		result, err := store.List(c.Request.Context(), admin.ListQuery{Page: page, PageSize: size, Filters: filters})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	})

	group.GET("/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		item, err := store.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	})

	group.POST("", func(c *gin.Context) {
		item := new(T)
		if err := c.ShouldBindJSON(item); err != nil {
			badRequest(c, err.Error())
			return
		}
		if err := store.Create(c.Request.Context(), item); err != nil {
			respondError(c, err)
			return
		}
		written(c)
		c.JSON(http.StatusCreated, item)
	})

	group.PUT("/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		item := new(T)
		if err := c.ShouldBindJSON(item); err != nil {
			badRequest(c, err.Error())
			return
		}
		if err := store.Update(c.Request.Context(), id, item); err != nil {
			respondError(c, err)
			return
		}
		written(c)
		c.JSON(http.StatusOK, item)
	})

	group.DELETE("/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		if err := store.Delete(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		written(c)
		c.Status(http.StatusNoContent)
	})
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid id")
		return 0, false
	}
	return id, true
}
