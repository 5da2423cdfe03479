package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-intel-api/internal/usecases/scanning"
	"github.com/vfg2006/ad-intel-api/pkg/apiErrors"
)

// StartScan dispara uma varredura da biblioteca de anúncios de um concorrente.
// A requisição informa uma URL direta ou o ID de uma marca cadastrada.
func StartScan(service scanning.Scanner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - StartScan")

		var req scanning.ScanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		report, err := service.Scan(r.Context(), &req)
		if err != nil {
			handleScanError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logrus.Error(err)
		}
	}
}

// StartBrandScan dispara uma varredura para uma marca já cadastrada na biblioteca.
// O corpo da requisição é opcional e carrega apenas os filtros.
func StartBrandScan(service scanning.Scanner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - StartBrandScan")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da marca não fornecido", nil)
			return
		}

		var req scanning.ScanRequest
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				logrus.Error(err)
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
				return
			}
		}

		req.BrandID = id
		req.SourceURL = ""

		report, err := service.Scan(r.Context(), &req)
		if err != nil {
			handleScanError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logrus.Error(err)
		}
	}
}

// GetScanReport retorna um relatório de varredura persistido
func GetScanReport(service scanning.Scanner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do relatório não fornecido", nil)
			return
		}

		report, err := service.GetReport(id)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar relatório", nil)
			return
		}

		if report == nil {
			apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Relatório não encontrado", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logrus.Error(err)
		}
	}
}

// RegenerateInsight reexecuta o pipeline de insight sobre um relatório persistido.
// Útil quando a geração original falhou e o ranking continua válido.
func RegenerateInsight(service scanning.Scanner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RegenerateInsight")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do relatório não fornecido", nil)
			return
		}

		report, err := service.RegenerateInsight(r.Context(), id)
		if err != nil {
			handleScanError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logrus.Error(err)
		}
	}
}

// ListScanReports lista os relatórios de varredura, opcionalmente filtrados por marca
func ListScanReports(service scanning.Scanner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var brandID *string
		if value := r.URL.Query().Get("brand_id"); value != "" {
			brandID = &value
		}

		limit := 20
		if value := r.URL.Query().Get("limit"); value != "" {
			parsed, err := strconv.Atoi(value)
			if err != nil || parsed <= 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro limit inválido", nil)
				return
			}
			limit = parsed
		}

		reports, err := service.ListReports(brandID, limit)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar relatórios", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(reports); err != nil {
			logrus.Error(err)
		}
	}
}

// handleScanError traduz os erros da varredura para respostas da API
func handleScanError(w http.ResponseWriter, err error) {
	logrus.Error(err)

	switch {
	case errors.Is(err, scanning.ErrMissingSource):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)

	case errors.Is(err, scanning.ErrBrandNotFound), errors.Is(err, scanning.ErrReportNotFound):
		apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, err.Error(), nil)

	case errors.Is(err, scanning.ErrInsightGeneration):
		apiErrors.WriteError(w, apiErrors.ErrModelService, err.Error(), nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrScraperService, "Erro ao executar varredura", nil)
	}
}
