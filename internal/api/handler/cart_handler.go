package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shoplist/shopping-api/internal/core/ports"
)

// CartHandler handles HTTP requests for the shared cart. All routes are public.
type CartHandler struct {
	cart ports.CartService
}

func NewCartHandler(cart ports.CartService) *CartHandler {
	return &CartHandler{cart: cart}
}

// Get handles GET /cart.
//
// @Summary      Get the cart
// @Tags         cart
// @Produce      json
// @Success      200  {object}  domain.Cart
// @Failure      500  {object}  errorResponse
// @Router       /cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	cart, err := h.cart.Get(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cart)
}

// Add handles POST /cart. Adding a product already in the cart increases
// that line's quantity; both outcomes answer 200 with the line.
//
// @Summary      Add a product to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body      addToCartRequest  true  "Product and quantity"
// @Success      200   {object}  domain.CartItem
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /cart [post]
func (h *CartHandler) Add(c echo.Context) error {
	var req addToCartRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.cart.Add(c.Request().Context(), req.ProductID, req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// Update handles PUT /cart/:id.
//
// @Summary      Set a cart line quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "Cart item id"
// @Param        body  body      updateCartItemRequest  true  "New quantity"
// @Success      200   {object}  domain.CartItem
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /cart/{id} [put]
func (h *CartHandler) Update(c echo.Context) error {
	var req updateCartItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.cart.UpdateQuantity(c.Request().Context(), c.Param("id"), req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// Remove handles DELETE /cart/:id.
//
// @Summary      Remove a cart line
// @Tags         cart
// @Produce      json
// @Param        id   path      string  true  "Cart item id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /cart/{id} [delete]
func (h *CartHandler) Remove(c echo.Context) error {
	if err := h.cart.Remove(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Cart item removed successfully"})
}
