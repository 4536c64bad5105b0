package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"catalog-recon/internal/catalog/model"
	recSvc "catalog-recon/internal/catalog/service"
	"catalog-recon/internal/config"
	"catalog-recon/internal/fileio"
	"catalog-recon/internal/middleware"
)

const maxMultipartMemory = 32 << 20

// loadUpload reads the "file" part into records. A missing or unreadable
// file is reported before any comparison runs.
func loadUpload(r *http.Request) ([]model.Record, string, error) {
	f, hdr, err := r.FormFile("file")
	if err != nil {
		return nil, "", errors.Join(model.ErrNoRecords, err)
	}
	defer f.Close()
	recs, err := fileio.ReadRecords(f, hdr.Filename, atoi(r.FormValue("header_row"), 1), mappingFromForm(r))
	return recs, hdr.Filename, err
}

// Dedupe handles POST /dedupe: multipart "file" with the catalog, optional
// "brands" filter and threshold overrides. Responds with the analysis.
func Dedupe(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := logger.With().Str("rid", middleware.GetRequestID(r)).Logger()

		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
			return
		}
		recs, name, err := loadUpload(r)
		if err != nil {
			http.Error(w, "failed to read catalog: "+err.Error(), http.StatusBadRequest)
			return
		}

		opts := optionsFromForm(r, cfg.EngineOptions())
		res, err := recSvc.NewAnalyzer(opts).Analyze(recs, splitCSV(r.FormValue("brands")))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		res.RunID = uuid.NewString()

		if err := writeJSON(w, http.StatusOK, res); err != nil {
			log.Error().Err(err).Msg("write json")
			return
		}
		log.Info().
			Str("file", name).
			Int("records", len(recs)).
			Int("partitions", len(res.Partitions)).
			Int("before", res.TotalBefore).
			Int("after", res.TotalAfter).
			Dur("elapsed", time.Since(start)).
			Msg("dedupe done")
	}
}

// Match handles POST /match: multipart "file" with the catalog plus image
// filenames either in the "images" field or an "images_file" part.
func Match(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := logger.With().Str("rid", middleware.GetRequestID(r)).Logger()

		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
			return
		}
		recs, name, err := loadUpload(r)
		if err != nil {
			http.Error(w, "failed to read catalog: "+err.Error(), http.StatusBadRequest)
			return
		}
		images, err := imagesFromForm(r)
		if err != nil {
			http.Error(w, "failed to read image list: "+err.Error(), http.StatusBadRequest)
			return
		}

		opts := optionsFromForm(r, cfg.EngineOptions())
		res, err := recSvc.NewMatcher(opts).Match(recs, images)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		log.Debug().
			Int("direct", res.Direct).
			Int("base_name", res.BaseName).
			Int("fuzzy", res.Fuzzy).
			Msg("match tiers")

		if err := writeJSON(w, http.StatusOK, res); err != nil {
			log.Error().Err(err).Msg("write json")
			return
		}
		log.Info().
			Str("file", name).
			Int("products", res.TotalProducts).
			Int("images", res.TotalImages).
			Int("matched", len(res.Assignments)).
			Dur("elapsed", time.Since(start)).
			Msg("match done")
	}
}

func imagesFromForm(r *http.Request) ([]string, error) {
	if f, _, err := r.FormFile("images_file"); err == nil {
		defer f.Close()
		b, err := io.ReadAll(f)
		if err != nil {
			return nil, err
		}
		return fileio.SplitImageList(string(b)), nil
	}
	if _, ok := r.MultipartForm.Value["images"]; !ok {
		return nil, model.ErrNoImages
	}
	return fileio.SplitImageList(r.FormValue("images")), nil
}
