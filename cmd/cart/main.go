package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/Skotchmaster/storefront/internal/cartstate"
	"github.com/Skotchmaster/storefront/internal/config"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/pkg/storefrontclient"
)

const usage = `usage: cart [flags] <command>

commands:
  products [search]     list products (-category filters by slug)
  add <productId> [n]   add n (default 1) of a product
  set <productId> <n>   set quantity, 0 removes
  remove <productId>    remove a product
  show                  print the cart
  clear                 empty the cart`

func main() {
	cfg := config.Load()

	apiURL := flag.String("api", config.EnvDefault("STOREFRONT_API_URL", "http://localhost:8080"), "storefront API base URL")
	user := flag.String("user", "", "cart namespace")
	dir := flag.String("dir", config.EnvDefault("CART_DIR", "."), "directory for the cart file when REDIS_URL is unset")
	category := flag.String("category", "", "category slug for products")
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage); flag.PrintDefaults() }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	logger := logging.New(cfg.LogLevel).With("service", "cart-cli")
	ctx, cancel := context.WithTimeout(logging.IntoContext(context.Background(), logger), 30*time.Second)
	defer cancel()

	storage, closeStorage, err := cartstate.StorageFor(cfg.RedisURL, *dir, *user)
	if err != nil {
		log.Fatalf("cart storage: %v", err)
	}
	defer closeStorage()

	store := cartstate.Open(ctx, storage, cartstate.WithLogger(logger))
	client := storefrontclient.NewClient(*apiURL)

	if err := run(ctx, client, store, *category, args); err != nil {
		log.Fatalf("%s: %v", args[0], err)
	}
}

func run(ctx context.Context, client *storefrontclient.Client, store *cartstate.Store, category string, args []string) error {
	switch args[0] {
	case "products":
		var f cartstate.Filters
		f.SetCategory(category)
		if len(args) > 1 {
			f.SetSearchTerm(args[1])
		}
		list, err := client.ListProducts(ctx, f.Query())
		if err != nil {
			return err
		}
		for _, p := range list.Products {
			fmt.Printf("%s  %-40s %10s\n", p.ID, p.Title, p.Price.StringFixed(2))
		}
		fmt.Printf("%d of %d\n", len(list.Products), list.Pagination.Total)

	case "add":
		if len(args) < 2 {
			return fmt.Errorf("missing product id")
		}
		p, err := client.GetProduct(ctx, args[1])
		if err != nil {
			return err
		}
		var sel cartstate.Selector
		sel.Select(*p)
		if len(args) > 2 {
			n, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("quantity: %w", err)
			}
			for i := 1; i < n; i++ {
				sel.Increment()
			}
		}
		sel.Confirm(store)
		printCart(store)

	case "set":
		if len(args) < 3 {
			return fmt.Errorf("need product id and quantity")
		}
		n, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("quantity: %w", err)
		}
		store.UpdateQuantity(args[1], n)
		printCart(store)

	case "remove":
		if len(args) < 2 {
			return fmt.Errorf("missing product id")
		}
		store.RemoveItem(args[1])
		printCart(store)

	case "show":
		printCart(store)

	case "clear":
		store.ClearCart()
		printCart(store)

	default:
		return fmt.Errorf("unknown command")
	}
	return nil
}

func printCart(store *cartstate.Store) {
	for _, it := range store.Items() {
		fmt.Printf("%s  %-40s x%-3d %10s\n", it.ProductID, it.Product.Title, it.Quantity, it.Product.Price.StringFixed(2))
	}
	fmt.Printf("items: %d  total: %s\n", store.TotalItems(), store.TotalPrice().StringFixed(2))
}
