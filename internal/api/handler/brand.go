package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-intel-api/internal/domain"
	"github.com/vfg2006/ad-intel-api/internal/usecases/branding"
	"github.com/vfg2006/ad-intel-api/pkg/apiErrors"
)

// CreateBrand cadastra uma marca concorrente na biblioteca
func CreateBrand(service branding.BrandManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateBrand")

		var req branding.CreateBrandRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		brand, err := service.CreateBrand(&req)
		if err != nil {
			handleBrandError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(brand); err != nil {
			logrus.Error(err)
		}
	}
}

// GetBrand retorna uma marca por ID
func GetBrand(service branding.BrandManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da marca não fornecido", nil)
			return
		}

		brand, err := service.GetBrand(id)
		if err != nil {
			handleBrandError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(brand); err != nil {
			logrus.Error(err)
		}
	}
}

// ListBrands lista as marcas cadastradas. Com ?active=true retorna apenas as ativas.
func ListBrands(service branding.BrandManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		onlyActive := r.URL.Query().Get("active") == "true"

		brands, err := service.ListBrands(onlyActive)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar marcas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(brands); err != nil {
			logrus.Error(err)
		}
	}
}

// UpdateBrand atualiza os campos presentes na requisição
func UpdateBrand(service branding.BrandManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da marca não fornecido", nil)
			return
		}

		var req domain.UpdateBrandRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}
		req.ID = id

		brand, err := service.UpdateBrand(&req)
		if err != nil {
			handleBrandError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(brand); err != nil {
			logrus.Error(err)
		}
	}
}

// DeleteBrand remove uma marca da biblioteca
func DeleteBrand(service branding.BrandManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da marca não fornecido", nil)
			return
		}

		if err := service.DeleteBrand(id); err != nil {
			handleBrandError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// handleBrandError traduz os erros do gerenciamento de marcas para respostas da API
func handleBrandError(w http.ResponseWriter, err error) {
	logrus.Error(err)

	switch {
	case errors.Is(err, branding.ErrBrandNotFound):
		apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, err.Error(), nil)

	case errors.Is(err, branding.ErrInvalidBrand), errors.Is(err, branding.ErrInvalidAdLibraryURL):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao processar marca", nil)
	}
}
