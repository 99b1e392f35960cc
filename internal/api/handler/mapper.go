package handler

import (
	"github.com/shoplist/shopping-api/internal/core/domain"
)

// --- Request → domain ---

func toImage(req imageRequest) domain.ProductImage {
	return domain.ProductImage{
		Thumbnail: req.Thumbnail,
		Mobile:    req.Mobile,
		Tablet:    req.Tablet,
		Desktop:   req.Desktop,
	}
}

func toProduct(req createProductRequest) *domain.Product {
	p := &domain.Product{
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Description: req.Description,
	}
	if req.Image != nil {
		p.Image = toImage(*req.Image)
	}
	return p
}

func toProductPatch(req updateProductRequest) domain.ProductPatch {
	patch := domain.ProductPatch{
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Description: req.Description,
	}
	if req.Image != nil {
		img := toImage(*req.Image)
		patch.Image = &img
	}
	return patch
}

func toUserPatch(req updateUserRequest) domain.UserPatch {
	return domain.UserPatch{
		Email: req.Email,
		Name:  req.Name,
		Role:  req.Role,
	}
}

// --- domain → response ---

func toUserSummary(u *domain.User) userSummary {
	return userSummary{
		ID:    u.ID,
		Email: u.Email,
		Role:  u.Role,
		Name:  u.Name,
	}
}
