package controllers

import (
	"context"
	"errors"
	"net/http"
	"stationd/internal/catalog"
	"stationd/internal/models"
	"stationd/internal/providers"
	"stationd/internal/services"
	"stationd/internal/starred"
	"stationd/internal/structures"
	"strconv"
	"time"
)

type ApiController struct {
	logger   providers.Logger
	factory  services.SourceFactoryInterface
	sources  *services.SourceRegistry
	catalog  catalog.ClientInterface
	store    starred.StoreInterface
	live     *services.LiveSearches
	timeout  time.Duration
	dispatch func(func())
}

func NewApiController(conf *structures.Config, logger providers.Logger, factory services.SourceFactoryInterface, sources *services.SourceRegistry, catalog catalog.ClientInterface, store starred.StoreInterface, live *services.LiveSearches) *ApiController {
	return &ApiController{
		logger:   logger,
		factory:  factory,
		sources:  sources,
		catalog:  catalog,
		store:    store,
		live:     live,
		timeout:  conf.Catalog.RequestTimeout,
		dispatch: func(f func()) { go f() },
	}
}

type openSourceResponse struct {
	ID       string `json:"id"`
	PageSize int    `json:"page_size"`
}

func (ac *ApiController) OpenSource(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := services.SourceRequest{
		Intent:      services.Intent(q.Get("intent")),
		Text:        q.Get("q"),
		CountryCode: q.Get("country"),
		Tags:        splitList(q.Get("tags")),
		Order:       q.Get("order"),
		UUIDs:       splitList(q.Get("uuids")),
		PageSize:    intParam(r, "page_size", 0),
	}
	if raw := q.Get("reverse"); raw != "" {
		reverse, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "reverse must be a boolean")
			return
		}
		req.Reverse = &reverse
	}

	source, err := ac.factory.New(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, openSourceResponse{ID: ac.sources.Open(source), PageSize: source.PageSize()})
}

func (ac *ApiController) NextPage(w http.ResponseWriter, r *http.Request) {
	page, err := ac.sources.Next(r.Context(), r.URL.Query().Get("id"))
	switch {
	case errors.Is(err, services.ErrUnknownSource):
		writeError(w, http.StatusNotFound, err.Error())
	case err != nil:
		ac.unavailable(w, r, err)
	default:
		writeJSON(w, http.StatusOK, page)
	}
}

func (ac *ApiController) CloseSource(w http.ResponseWriter, r *http.Request) {
	if !ac.sources.Close(r.URL.Query().Get("id")) {
		writeError(w, http.StatusNotFound, services.ErrUnknownSource.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (ac *ApiController) GetStations(w http.ResponseWriter, r *http.Request) {
	stations, err := ac.catalog.ByUUID(r.Context(), r.URL.Query().Get("uuids"))
	if err != nil {
		ac.unavailable(w, r, err)
		return
	}
	for _, st := range stations {
		st.Starred = ac.store.Contains(st.UUID)
	}
	writeJSON(w, http.StatusOK, stations)
}

// GetTags lists every tag the catalog knows about when no limit is given.
func (ac *ApiController) GetTags(w http.ResponseWriter, r *http.Request) {
	limit := intParam(r, "limit", 0)
	if limit <= 0 {
		stats, err := ac.catalog.Stats(r.Context())
		if err != nil {
			ac.unavailable(w, r, err)
			return
		}
		limit = stats.Tags
	}

	tags, err := ac.catalog.Tags(r.Context(), intParam(r, "offset", 0), limit)
	if err != nil {
		ac.unavailable(w, r, err)
		return
	}
	if tags == nil {
		tags = make([]models.Tag, 0)
	}
	writeJSON(w, http.StatusOK, tags)
}

func (ac *ApiController) Vote(w http.ResponseWriter, r *http.Request) {
	ac.track(w, r, ac.catalog.Vote)
}

func (ac *ApiController) Click(w http.ResponseWriter, r *http.Request) {
	ac.track(w, r, ac.catalog.Click)
}

// track answers immediately; the catalog call outlives the request.
func (ac *ApiController) track(w http.ResponseWriter, r *http.Request, call func(context.Context, string)) {
	id := r.URL.Query().Get("uuid")
	if id == "" {
		writeError(w, http.StatusBadRequest, "uuid is required")
		return
	}
	ctx := context.WithoutCancel(r.Context())
	ac.dispatch(func() {
		ctx, cancel := context.WithTimeout(ctx, ac.timeout)
		defer cancel()
		call(ctx, id)
	})
	w.WriteHeader(http.StatusAccepted)
}

func (ac *ApiController) LiveUpdate(w http.ResponseWriter, r *http.Request) {
	session := r.URL.Query().Get("session")
	if session == "" {
		writeError(w, http.StatusBadRequest, "session is required")
		return
	}
	ac.live.Update(session, r.URL.Query().Get("q"))
	w.WriteHeader(http.StatusAccepted)
}

func (ac *ApiController) LiveResult(w http.ResponseWriter, r *http.Request) {
	result, ok := ac.live.Result(r.URL.Query().Get("session"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}
	if result.Err != nil {
		ac.unavailable(w, r, result.Err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// unavailable separates a broken catalog from a request we could not serve.
func (ac *ApiController) unavailable(w http.ResponseWriter, r *http.Request, err error) {
	ac.logger.Warnf(providers.GetLogTypeByRequestType(r.Method), "%s %s: %s", r.Method, r.URL.Path, err)
	if catalog.IsUnavailable(err) {
		writeError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}
	writeError(w, http.StatusInternalServerError, "internal error")
}
