package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"go-parts-inventory/internal/model"
	"go-parts-inventory/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VendorService interface {
	CreateVendor(ctx context.Context, req *VendorRequest, actor Actor) (*model.Vendor, error)
	UpdateVendor(ctx context.Context, id uuid.UUID, req *VendorRequest, actor Actor) (*model.Vendor, error)
	GetVendor(ctx context.Context, id uuid.UUID) (*model.Vendor, error)
	GetAllVendors(ctx context.Context) ([]model.Vendor, error)
}

type VendorRequest struct {
	Name    string `json:"name" validate:"required,max=120"`
	Contact string `json:"contact" validate:"max=120"`
	Phone   string `json:"phone" validate:"max=15"`
	Website string `json:"website" validate:"max=120"`
	Line1   string `json:"line1" validate:"max=120"`
	Line2   string `json:"line2" validate:"max=120"`
	City    string `json:"city" validate:"max=120"`
	State   string `json:"state" validate:"omitempty,us_state"`
	Zipcode string `json:"zipcode" validate:"max=16"`
}

func (r *VendorRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.State = strings.ToUpper(strings.TrimSpace(r.State))
}

func (r *VendorRequest) applyTo(v *model.Vendor) {
	v.Name = r.Name
	v.Contact = r.Contact
	v.Phone = r.Phone
	v.Website = r.Website
	if v.Address == nil {
		v.Address = &model.Address{}
	}
	v.Address.Line1 = r.Line1
	v.Address.Line2 = r.Line2
	v.Address.City = r.City
	v.Address.State = r.State
	v.Address.Zipcode = r.Zipcode
}

type vendorService struct {
	vendorRepo repository.VendorRepository
	log        *slog.Logger
}

func NewVendorService(vendorRepo repository.VendorRepository, log *slog.Logger) VendorService {
	if log == nil {
		log = slog.Default()
	}
	return &vendorService{vendorRepo: vendorRepo, log: log}
}

func (s *vendorService) CreateVendor(ctx context.Context, req *VendorRequest, actor Actor) (*model.Vendor, error) {
	req.normalize()
	if err := validate(req); err != nil {
		return nil, err
	}

	if _, err := s.vendorRepo.FindByName(ctx, req.Name); err == nil {
		return nil, duplicate("vendor")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	vendor := &model.Vendor{}
	req.applyTo(vendor)
	vendor.CreatedBy = actor.auditID()
	vendor.UpdatedBy = actor.auditID()
	vendor.Address.CreatedBy = actor.auditID()
	if err := s.vendorRepo.Create(ctx, vendor); err != nil {
		return nil, writeErr(err, "vendor")
	}

	s.log.Info("vendor created", "name", vendor.Name, "user", actor.Email)
	return vendor, nil
}

func (s *vendorService) UpdateVendor(ctx context.Context, id uuid.UUID, req *VendorRequest, actor Actor) (*model.Vendor, error) {
	req.normalize()
	if err := validate(req); err != nil {
		return nil, err
	}

	vendor, err := s.vendorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "vendor")
	}
	if req.Name != vendor.Name {
		if clash, err := s.vendorRepo.FindByName(ctx, req.Name); err == nil && clash.ID != vendor.ID {
			return nil, duplicate("vendor")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	req.applyTo(vendor)
	vendor.UpdatedBy = actor.auditID()
	vendor.Address.UpdatedBy = actor.auditID()
	if err := s.vendorRepo.Update(ctx, vendor); err != nil {
		return nil, writeErr(err, "vendor")
	}
	return s.GetVendor(ctx, id)
}

func (s *vendorService) GetVendor(ctx context.Context, id uuid.UUID) (*model.Vendor, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "vendor")
	}
	return vendor, nil
}

func (s *vendorService) GetAllVendors(ctx context.Context) ([]model.Vendor, error) {
	return s.vendorRepo.FindAll(ctx)
}
