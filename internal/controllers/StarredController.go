package controllers

import (
	"errors"
	"net/http"
	"stationd/internal/catalog"
	"stationd/internal/models"
	"stationd/internal/providers"
	"stationd/internal/starred"
)

type StarredController struct {
	logger  providers.Logger
	store   starred.StoreInterface
	catalog catalog.ClientInterface
}

func NewStarredController(logger providers.Logger, store starred.StoreInterface, catalog catalog.ClientInterface) *StarredController {
	return &StarredController{
		logger:  logger,
		store:   store,
		catalog: catalog,
	}
}

type toggleResponse struct {
	UUID    string `json:"uuid"`
	Starred bool   `json:"starred"`
}

func (sc *StarredController) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sc.store.List())
}

// Toggle flips the starred state of a station known locally or to the catalog.
// A failed write is logged; the new state is still reported.
func (sc *StarredController) Toggle(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("uuid")
	if id == "" {
		writeError(w, http.StatusBadRequest, "uuid is required")
		return
	}

	station, ok := sc.store.Get(id)
	if !ok {
		found, err := sc.catalog.ByUUID(r.Context(), id)
		if err != nil {
			sc.logger.Warnf(providers.TypePost, "Lookup of %s for starring failed: %s", id, err)
			writeError(w, http.StatusServiceUnavailable, "service unavailable")
			return
		}
		station = firstWithID(found, id)
		if station == nil {
			writeError(w, http.StatusNotFound, "station not found")
			return
		}
	}

	state, err := sc.store.Toggle(station)
	if errors.Is(err, starred.ErrInvalidStation) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		sc.logger.Errorf(providers.TypePost, "Starred state of %s changed but was not saved: %s", id, err)
	}
	writeJSON(w, http.StatusOK, toggleResponse{UUID: id, Starred: state})
}

func (sc *StarredController) Export(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "audio/x-mpegurl")
	w.Header().Set("Content-Disposition", `attachment; filename="starred.m3u"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(sc.store.ExportPlaylist()))
}

func (sc *StarredController) Searches(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sc.store.Searches())
}

func (sc *StarredController) AddSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}
	if err := sc.store.AddSearch(q); err != nil {
		sc.logger.Errorf(providers.TypePost, "Saving search %q: %s", q, err)
	}
	writeJSON(w, http.StatusCreated, sc.store.Searches())
}

func (sc *StarredController) RemoveSearch(w http.ResponseWriter, r *http.Request) {
	if err := sc.store.RemoveSearch(r.URL.Query().Get("q")); err != nil {
		sc.logger.Errorf(providers.TypePost, "Removing saved search: %s", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

func firstWithID(stations []*models.Station, id string) *models.Station {
	for _, st := range stations {
		if st.UUID == id {
			return st
		}
	}
	return nil
}
