package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/shoplist/shopping-api/internal/core/domain"
	"github.com/shoplist/shopping-api/internal/core/ports"
)

// DataService reports collection sizes and reloads the sample data set.
type DataService struct {
	users     ports.UserRepository
	products  ports.ProductRepository
	cart      ports.CartRepository
	passwords ports.PasswordMatcher
	log       zerolog.Logger
}

func NewDataService(users ports.UserRepository, products ports.ProductRepository, cart ports.CartRepository, passwords ports.PasswordMatcher, log zerolog.Logger) *DataService {
	if passwords == nil {
		passwords = PlainPasswords{}
	}
	return &DataService{users: users, products: products, cart: cart, passwords: passwords, log: log}
}

func (s *DataService) Stats(ctx context.Context) (*ports.Stats, error) {
	var (
		st  ports.Stats
		err error
	)
	if st.Products, err = s.products.Count(ctx); err != nil {
		return nil, fmt.Errorf("stats: count products: %w", err)
	}
	if st.Cart, err = s.cart.Count(ctx); err != nil {
		return nil, fmt.Errorf("stats: count cart: %w", err)
	}
	if st.Users, err = s.users.Count(ctx); err != nil {
		return nil, fmt.Errorf("stats: count users: %w", err)
	}
	return &st, nil
}

// Seed wipes all three collections and inserts the sample data set.
func (s *DataService) Seed(ctx context.Context) (*ports.SeedResult, error) {
	if err := s.cart.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("seed: clear cart: %w", err)
	}
	if err := s.products.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("seed: clear products: %w", err)
	}
	if err := s.users.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("seed: clear users: %w", err)
	}

	now := time.Now().UTC()
	var res ports.SeedResult

	products := make([]*domain.Product, 0, len(sampleProducts))
	for _, p := range sampleProducts {
		p := p
		p.CreatedAt, p.UpdatedAt = now, now
		created, err := s.products.Create(ctx, &p)
		if err != nil {
			return nil, fmt.Errorf("seed: insert product %q: %w", p.Name, err)
		}
		products = append(products, created)
		res.Products++
	}

	for _, u := range sampleUsers {
		u := u
		stored, err := s.passwords.Prepare(u.Password)
		if err != nil {
			return nil, fmt.Errorf("seed: %w", err)
		}
		u.Password = stored
		u.CreatedAt, u.UpdatedAt = now, now
		if _, err := s.users.Create(ctx, &u); err != nil {
			return nil, fmt.Errorf("seed: insert user %q: %w", u.Email, err)
		}
		res.Users++
	}

	for _, line := range sampleCart {
		if line.product >= len(products) {
			continue
		}
		item := &domain.CartItem{
			ProductID: products[line.product].ID,
			Quantity:  line.quantity,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := s.cart.Create(ctx, item); err != nil {
			return nil, fmt.Errorf("seed: insert cart item: %w", err)
		}
		res.Cart++
	}

	s.log.Info().
		Int("products", res.Products).
		Int("users", res.Users).
		Int("cart", res.Cart).
		Msg("database seeded")
	return &res, nil
}

var placeholderImage = domain.ProductImage{
	Thumbnail: "/placeholder.svg?height=100&width=100",
	Mobile:    "/placeholder.svg?height=300&width=400",
	Tablet:    "/placeholder.svg?height=400&width=600",
	Desktop:   "/placeholder.svg?height=600&width=800",
}

var sampleProducts = []domain.Product{
	{Name: "Waffle with Berries", Category: "Waffle", Price: 6.5, Description: "Crispy Belgian waffle topped with fresh seasonal berries and maple syrup.", Image: placeholderImage},
	{Name: "Vanilla Bean Crème Brûlée", Category: "Crème Brûlée", Price: 7.0, Description: "Classic French dessert with rich vanilla custard and caramelized sugar top.", Image: placeholderImage},
	{Name: "Macaron Mix of Five", Category: "Macaron", Price: 8.0, Description: "Assortment of five delicate French macarons in seasonal flavors.", Image: placeholderImage},
	{Name: "Chocolate Lava Cake", Category: "Cake", Price: 8.5, Description: "Warm chocolate cake with a molten center, served with vanilla ice cream.", Image: placeholderImage},
	{Name: "Tiramisu", Category: "Italian", Price: 7.5, Description: "Classic Italian dessert with layers of coffee-soaked ladyfingers and mascarpone cream.", Image: placeholderImage},
	{Name: "New York Cheesecake", Category: "Cheesecake", Price: 6.75, Description: "Rich and creamy classic New York style cheesecake with graham cracker crust.", Image: placeholderImage},
	{Name: "Apple Pie", Category: "Pie", Price: 5.5, Description: "Traditional apple pie with flaky crust and cinnamon-spiced filling.", Image: placeholderImage},
	{Name: "Matcha Green Tea Ice Cream", Category: "Ice Cream", Price: 4.5, Description: "Smooth and creamy ice cream with authentic Japanese matcha flavor.", Image: placeholderImage},
}

var sampleUsers = []domain.User{
	{Email: "admin@example.com", Password: "admin123", Role: domain.RoleAdmin, Name: "Admin User"},
	{Email: "user@example.com", Password: "user123", Role: domain.RoleUser, Name: "Regular User"},
}

// sampleCart references sampleProducts by index.
var sampleCart = []struct {
	product  int
	quantity int
}{
	{product: 0, quantity: 2},
	{product: 2, quantity: 1},
}
