package commands

import (
	"github.com/spf13/cobra"
)

// NewSeedCommand creates the seed command
func NewSeedCommand(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Args:  cobra.NoArgs,
		Short: "Replace all data with the sample data set",
		Long:  `Deletes every product, cart item and user, then inserts the sample products, two sample users and two cart items.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(cmd.Context(), *envFile)
			if err != nil {
				return err
			}
			defer a.close()

			res, err := a.data.Seed(cmd.Context())
			if err != nil {
				return err
			}

			a.log.Info().
				Int("products", res.Products).
				Int("users", res.Users).
				Int("cart", res.Cart).
				Msg("database seeded")
			return nil
		},
	}
}
