package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/lumierefi/store_api/internal/models"
	"github.com/lumierefi/store_api/internal/repository"
	"github.com/lumierefi/store_api/internal/utils"
)

// AddressHandler handles saved-address CRUD for the signed-in account.
type AddressHandler struct {
	addresses *repository.AddressRepository
}

// NewAddressHandler constructs an AddressHandler.
func NewAddressHandler(addresses *repository.AddressRepository) *AddressHandler {
	return &AddressHandler{addresses: addresses}
}

type addressRequest struct {
	Label             string `json:"label"`
	First             string `json:"first" binding:"required"`
	Last              string `json:"last" binding:"required"`
	Addr              string `json:"addr" binding:"required"`
	City              string `json:"city" binding:"required"`
	Postal            string `json:"postal" binding:"required"`
	Country           string `json:"country"`
	IsDefaultShipping bool   `json:"isDefaultShipping"`
	IsDefaultBilling  bool   `json:"isDefaultBilling"`
}

func (r addressRequest) toModel(userID string) models.Address {
	label := r.Label
	if label == "" {
		label = "Home"
	}
	country := r.Country
	if country == "" {
		country = "Finland"
	}
	return models.Address{
		UserID:            userID,
		Label:             label,
		First:             r.First,
		Last:              r.Last,
		Addr:              r.Addr,
		City:              r.City,
		Postal:            r.Postal,
		Country:           country,
		IsDefaultShipping: r.IsDefaultShipping,
		IsDefaultBilling:  r.IsDefaultBilling,
	}
}

// ListAddresses returns the account's addresses, newest first.
func (h *AddressHandler) ListAddresses(c *gin.Context) {
	addresses, err := h.addresses.ListForUser(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to list addresses")
		return
	}
	utils.Success(c, 200, "Addresses retrieved successfully", gin.H{"addresses": addresses})
}

// CreateAddress saves a new address. The account's first address becomes
// the default shipping address.
func (h *AddressHandler) CreateAddress(c *gin.Context) {
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	userID := c.GetString("user_id")
	addr := req.toModel(userID)

	count, err := h.addresses.CountForUser(c.Request.Context(), userID)
	if err == nil && count == 0 {
		addr.IsDefaultShipping = true
	}

	if err := h.addresses.Create(c.Request.Context(), &addr); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to save address")
		return
	}
	utils.Success(c, 201, "Address saved", gin.H{"address": addr})
}

// UpdateAddress rewrites an address the account owns.
func (h *AddressHandler) UpdateAddress(c *gin.Context) {
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	addr := req.toModel(c.GetString("user_id"))
	addr.ID = c.Param("id")

	n, err := h.addresses.Update(c.Request.Context(), &addr)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update address")
		return
	}
	if n == 0 {
		utils.Error(c, 404, "ADDRESS_NOT_FOUND", "Address not found")
		return
	}
	utils.Success(c, 200, "Address updated", gin.H{"address": addr})
}

// DeleteAddress removes an address the account owns.
func (h *AddressHandler) DeleteAddress(c *gin.Context) {
	n, err := h.addresses.Delete(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete address")
		return
	}
	if n == 0 {
		utils.Error(c, 404, "ADDRESS_NOT_FOUND", "Address not found")
		return
	}
	utils.Success(c, 200, "Address deleted", nil)
}
