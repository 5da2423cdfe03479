package branding

import (
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-intel-api/infrastructure/repository"
	"github.com/vfg2006/ad-intel-api/internal/domain"
	"github.com/vfg2006/ad-intel-api/pkg/utils"
)

var (
	// ErrBrandNotFound indica que a marca não existe ou já foi removida.
	ErrBrandNotFound = errors.New("marca não encontrada")
	// ErrInvalidBrand indica que a requisição de criação está incompleta.
	ErrInvalidBrand = errors.New("nome e URL da biblioteca de anúncios são obrigatórios")
	// ErrInvalidAdLibraryURL indica que a URL informada não é uma URL absoluta válida.
	ErrInvalidAdLibraryURL = errors.New("URL da biblioteca de anúncios inválida")
)

// CreateBrandRequest é o payload de cadastro de uma marca concorrente.
type CreateBrandRequest struct {
	Name         string `json:"name"`
	AdLibraryURL string `json:"ad_library_url"`
}

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks
type BrandManager interface {
	CreateBrand(req *CreateBrandRequest) (*domain.Brand, error)
	GetBrand(id string) (*domain.Brand, error)
	ListBrands(onlyActive bool) ([]*domain.Brand, error)
	UpdateBrand(req *domain.UpdateBrandRequest) (*domain.Brand, error)
	DeleteBrand(id string) error
}

type Service struct {
	brandRepo repository.BrandRepository
	now       func() time.Time
}

func NewService(brandRepo repository.BrandRepository) *Service {
	return &Service{
		brandRepo: brandRepo,
		now:       time.Now,
	}
}

func (s *Service) CreateBrand(req *CreateBrandRequest) (*domain.Brand, error) {
	name := strings.TrimSpace(req.Name)
	libraryURL := strings.TrimSpace(req.AdLibraryURL)

	if name == "" || libraryURL == "" {
		return nil, ErrInvalidBrand
	}

	if err := validateAdLibraryURL(libraryURL); err != nil {
		return nil, err
	}

	brandID, err := utils.GenerateID()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar identificador da marca")
	}

	now := s.now()
	brand := &domain.Brand{
		ID:           brandID,
		Name:         name,
		AdLibraryURL: libraryURL,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.brandRepo.CreateBrand(brand); err != nil {
		return nil, errors.Wrap(err, "erro ao criar marca")
	}

	logrus.WithFields(logrus.Fields{
		"brand_id":   brand.ID,
		"brand_name": brand.Name,
	}).Info("brands: brand created")

	return brand, nil
}

func (s *Service) GetBrand(id string) (*domain.Brand, error) {
	brand, err := s.brandRepo.GetBrandByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar marca")
	}
	if brand == nil {
		return nil, ErrBrandNotFound
	}

	return brand, nil
}

func (s *Service) ListBrands(onlyActive bool) ([]*domain.Brand, error) {
	return s.brandRepo.ListBrands(onlyActive)
}

// UpdateBrand aplica apenas os campos presentes na requisição.
func (s *Service) UpdateBrand(req *domain.UpdateBrandRequest) (*domain.Brand, error) {
	brand, err := s.GetBrand(req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrInvalidBrand
		}
		brand.Name = name
	}

	if req.AdLibraryURL != nil {
		libraryURL := strings.TrimSpace(*req.AdLibraryURL)
		if err := validateAdLibraryURL(libraryURL); err != nil {
			return nil, err
		}
		brand.AdLibraryURL = libraryURL
	}

	if req.Active != nil {
		brand.Active = *req.Active
	}

	brand.UpdatedAt = s.now()

	if err := s.brandRepo.UpdateBrand(brand); err != nil {
		return nil, errors.Wrap(err, "erro ao atualizar marca")
	}

	return brand, nil
}

func (s *Service) DeleteBrand(id string) error {
	if _, err := s.GetBrand(id); err != nil {
		return err
	}

	if err := s.brandRepo.DeleteBrand(id); err != nil {
		return errors.Wrap(err, "erro ao remover marca")
	}

	logrus.WithField("brand_id", id).Info("brands: brand deleted")

	return nil
}

func validateAdLibraryURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return ErrInvalidAdLibraryURL
	}
	return nil
}
