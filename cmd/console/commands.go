package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"backoffice/internal/client"
	"backoffice/internal/console"
	"backoffice/internal/domain"
)

func cmdLogin(ctx context.Context, app *console.App, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)
	if *email == "" || *password == "" {
		return fmt.Errorf("login requires -email and -password")
	}

	identity, err := app.Guard.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("signed in as %s (%s)\n", identity.Name, identity.Role)
	return nil
}

func cmdWhoami(ctx context.Context, app *console.App) error {
	identity, ok := app.Guard.CheckAuth(ctx)
	if !ok {
		fmt.Println("not signed in")
		return nil
	}
	fmt.Printf("%s <%s> role=%s id=%s\n", identity.Name, identity.Email, identity.Role, identity.UserIdentifier)
	if info, err := app.Guard.TokenInfo(ctx); err == nil && !info.ExpiresAt.IsZero() {
		fmt.Printf("token expires %s\n", info.ExpiresAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func cmdCart(ctx context.Context, app *console.App, args []string) error {
	if len(args) == 0 {
		args = []string{"show"}
	}
	sub, rest := args[0], args[1:]

	if err := app.Cart.Initialize(ctx); err != nil {
		return err
	}

	switch sub {
	case "show":
		printCart(app.Cart.Cart())
		return nil
	case "add":
		fs := flag.NewFlagSet("cart add", flag.ExitOnError)
		product := fs.Int("product", 0, "product id")
		qty := fs.Int("qty", 1, "quantity")
		fs.Parse(rest)
		if err := app.Cart.AddItem(ctx, domain.AddToCartRequest{ProductID: *product, Quantity: *qty}); err != nil {
			return err
		}
	case "update":
		fs := flag.NewFlagSet("cart update", flag.ExitOnError)
		item := fs.Int("item", 0, "cart item id")
		qty := fs.Int("qty", 1, "quantity")
		fs.Parse(rest)
		if err := app.Cart.UpdateItem(ctx, domain.UpdateCartItemRequest{CartItemID: *item, Quantity: *qty}); err != nil {
			return err
		}
	case "remove":
		fs := flag.NewFlagSet("cart remove", flag.ExitOnError)
		item := fs.Int("item", 0, "cart item id")
		fs.Parse(rest)
		if err := app.Cart.RemoveItem(ctx, *item); err != nil {
			return err
		}
	case "clear":
		if err := app.Cart.Clear(ctx); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown cart subcommand %q", sub)
	}

	printCart(app.Cart.Cart())
	return nil
}

func printCart(cart *domain.Cart) {
	if cart == nil || len(cart.Items) == 0 {
		fmt.Println("cart is empty")
		return
	}
	for _, item := range cart.Items {
		fmt.Printf("  #%d %s x%d @ %.2f = %.2f\n",
			item.ID, item.ProductName, item.Quantity, item.UnitPrice, item.LineTotal)
	}
	fmt.Printf("items: %d  subtotal: %.2f\n", cart.TotalItems, cart.Subtotal)
}

func cmdOrders(ctx context.Context, app *console.App, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "list":
		fs := flag.NewFlagSet("orders list", flag.ExitOnError)
		page := fs.Int("page", 0, "page number (default: current)")
		fs.Parse(rest)
		if err := app.Orders.Initialize(ctx); err != nil {
			return err
		}
		if *page > 0 {
			if err := app.Orders.SetPage(ctx, *page); err != nil {
				return err
			}
		}
		for _, order := range app.Orders.Orders() {
			fmt.Printf("  %s #%d %s/%s total=%.2f created=%s\n",
				order.OrderNumber, order.ID, order.Status, order.PaymentStatus, order.Total, order.CreatedAt)
		}
		fmt.Printf("page %d of %d\n", app.Orders.CurrentPage(), app.Orders.TotalPages())
		return nil
	case "cancel":
		fs := flag.NewFlagSet("orders cancel", flag.ExitOnError)
		order := fs.Int("order", 0, "order id")
		reason := fs.String("reason", "", "cancellation reason")
		fs.Parse(rest)
		if err := app.Orders.Initialize(ctx); err != nil {
			return err
		}
		return app.Orders.Cancel(ctx, *order, *reason)
	case "checkout":
		fs := flag.NewFlagSet("orders checkout", flag.ExitOnError)
		method := fs.Int("method", int(domain.PaymentPix), "payment method")
		shipping := fs.Float64("shipping", 0, "shipping cost")
		discount := fs.Float64("discount", 0, "discount")
		notes := fs.String("notes", "", "order notes")
		fs.Parse(rest)
		if err := app.Orders.Initialize(ctx); err != nil {
			return err
		}
		order, err := app.Orders.Checkout(ctx, domain.CheckoutRequest{
			PaymentMethod: domain.PaymentMethod(*method),
			ShippingCost:  *shipping,
			Discount:      *discount,
			Notes:         *notes,
		})
		if err != nil {
			return err
		}
		if order != nil {
			fmt.Printf("created order %s (#%d) total=%.2f\n", order.OrderNumber, order.ID, order.Total)
		}
		return nil
	}
	return fmt.Errorf("unknown orders subcommand %q", sub)
}

func cmdProducts(ctx context.Context, app *console.App, args []string) error {
	fs := flag.NewFlagSet("products list", flag.ExitOnError)
	page := fs.Int("page", 1, "page number")
	size := fs.Int("size", 10, "page size")
	name := fs.String("name", "", "name prefix filter")
	fs.Parse(skipList(args))

	result, err := app.Products.List(ctx, domain.ProductSearchParams{
		NamePrefix: *name,
		PageParams: domain.PageParams{PageNumber: *page, PageSize: *size},
	})
	if err != nil {
		return err
	}
	for _, p := range result.Items {
		fmt.Printf("  #%d %s [%s] %.2f\n", p.ID, p.Name, p.Code, p.Price)
	}
	fmt.Printf("page %d of %d (%d total)\n", result.PageNumber, result.TotalPages, result.TotalCount)
	return nil
}

func cmdCategories(ctx context.Context, app *console.App, args []string) error {
	fs := flag.NewFlagSet("categories list", flag.ExitOnError)
	page := fs.Int("page", 1, "page number")
	size := fs.Int("size", 10, "page size")
	fs.Parse(skipList(args))

	result, err := app.Categories.List(ctx, domain.CategorySearchParams{
		PageParams: domain.PageParams{PageNumber: *page, PageSize: *size},
	})
	if err != nil {
		return err
	}
	for _, c := range result.Items {
		fmt.Printf("  #%d %s [%s]\n", c.ID, c.Name, c.Code)
	}
	fmt.Printf("page %d of %d (%d total)\n", result.PageNumber, result.TotalPages, result.TotalCount)
	return nil
}

func cmdUsers(ctx context.Context, app *console.App, args []string) error {
	fs := flag.NewFlagSet("users list", flag.ExitOnError)
	page := fs.Int("page", 1, "page number")
	size := fs.Int("size", 10, "page size")
	email := fs.String("email", "", "email prefix filter")
	fs.Parse(skipList(args))

	result, err := app.Users.List(ctx, domain.UserSearchParams{
		EmailPrefix: *email,
		PageParams:  domain.PageParams{PageNumber: *page, PageSize: *size},
	})
	if err != nil {
		return err
	}
	for _, u := range result.Items {
		active := "inactive"
		if u.IsActive {
			active = "active"
		}
		fmt.Printf("  #%d %s <%s> %s %s\n", u.ID, u.Name, u.Email, u.Role, active)
	}
	fmt.Printf("page %d of %d (%d total)\n", result.PageNumber, result.TotalPages, result.TotalCount)
	return nil
}

func cmdImage(ctx context.Context, app *console.App, args []string) error {
	if len(args) == 0 || args[0] != "upload" {
		return fmt.Errorf("image supports: upload")
	}
	fs := flag.NewFlagSet("image upload", flag.ExitOnError)
	file := fs.String("file", "", "path to the image file")
	entityType := fs.Int("entity-type", int(domain.EntityProduct), "entity type")
	entityID := fs.Int("entity-id", 0, "entity id")
	imageType := fs.Int("type", int(domain.ImageProductMain), "image type")
	main := fs.Bool("main", false, "set as the entity's main image")
	alt := fs.String("alt", "", "alt text")
	fs.Parse(args[1:])
	if *file == "" || *entityID == 0 {
		return fmt.Errorf("image upload requires -file and -entity-id")
	}

	f, err := os.Open(*file)
	if err != nil {
		return err
	}
	defer f.Close()

	image, err := app.Images.Upload(ctx, client.UploadRequest{
		FileName:   filepath.Base(*file),
		Body:       f,
		EntityType: domain.EntityType(*entityType),
		EntityID:   *entityID,
		ImageType:  domain.ImageType(*imageType),
		SetAsMain:  *main,
		Alt:        *alt,
	})
	if err != nil {
		return err
	}
	if image != nil {
		fmt.Printf("uploaded image #%d (%s)\n", image.ID, image.FileName)
	}
	return nil
}

// skipList drops a leading "list" word so `products list -page 2` and
// `products -page 2` both work.
func skipList(args []string) []string {
	if len(args) > 0 && args[0] == "list" {
		return args[1:]
	}
	return args
}
