package cli

import (
	"context"
	"slices"

	"github.com/spf13/cobra"

	"github.com/existflow/flownote/internal/model"
	"github.com/existflow/flownote/internal/store"
)

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Spend coins on skins",
	RunE:  runShopList,
}

var shopBuyCmd = &cobra.Command{
	Use:   "buy [skin]",
	Short: "Buy a skin",
	Args:  cobra.ExactArgs(1),
	RunE:  runShopBuy,
}

var shopUseCmd = &cobra.Command{
	Use:   "use [skin]",
	Short: "Switch to an owned skin",
	Args:  cobra.ExactArgs(1),
	RunE:  runShopUse,
}

func init() {
	shopCmd.AddCommand(shopBuyCmd)
	shopCmd.AddCommand(shopUseCmd)
}

func runShopList(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		owned := st.OwnedSkins()
		active := st.ActiveSkin()
		printf(cmd, "Coins: %d\n", st.Profile().Coins)
		for _, s := range model.Skins {
			state := ""
			switch {
			case s.ID == active:
				state = "active"
			case slices.Contains(owned, s.ID):
				state = "owned"
			}
			printf(cmd, "  %-10s %-10s %4d  %s\n", s.ID, s.Name, s.Price, state)
		}
		return nil
	})
}

func runShopBuy(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		if err := st.PurchaseSkin(ctx, args[0]); err != nil {
			return err
		}
		printf(cmd, "✓ Bought %s (balance %d)\n", args[0], st.Profile().Coins)
		return nil
	})
}

func runShopUse(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		if err := st.SetActiveSkin(ctx, args[0]); err != nil {
			return err
		}
		printf(cmd, "✓ Using %s\n", args[0])
		return nil
	})
}
