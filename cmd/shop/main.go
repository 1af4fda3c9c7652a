package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/vegvendor-client/internal/app"
	"github.com/vegvendor-client/internal/config"
	"github.com/vegvendor-client/internal/constants"
	"github.com/vegvendor-client/internal/gateway"
	"github.com/vegvendor-client/internal/logger"
	"github.com/vegvendor-client/internal/models"
	"github.com/vegvendor-client/internal/provider"
	"github.com/vegvendor-client/internal/views"
)

const usage = `usage: shop <command> [arguments]

commands:
  browse   -category <name> [-add <productID>] [-size <size>] [-qty <n>]
  cart     [-inc <lineKey>] [-dec <lineKey>] [-remove <lineKey>] [-clear] [-offer <offerID>]
  checkout
  orders   [-bill <orderID>] [-cancel <orderID>]
  offers   [-create|-update|-delete] [-id <id>] [-product <name>] [-desc <text>] [-min <amount>] [-discount <percent>]
  admin    [-status <orderID>=<status>] [-remove-item <orderID>/<itemID>]
           [-create-product -category <name> -name <name> -sizes <size>=<price>[,...] [-image <url>]]
  login    -email <email> -password <password>
  register -name <name> -email <email> -password <password> -number <phone> -address <address>
  profile  [-name <name>] [-number <phone>] [-address <address>]
  logout
  watch
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()
	logger.Init(cfg.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	container := provider.NewContainer(cfg)
	defer container.Cart.Close()

	ctx := context.Background()
	command, args := os.Args[1], os.Args[2:]

	var err error
	switch command {
	case "browse":
		err = runBrowse(ctx, container, args)
	case "cart":
		err = runCart(ctx, container, args)
	case "checkout":
		err = runCheckout(ctx, container)
	case "orders":
		err = runOrders(ctx, container, args)
	case "offers":
		err = runOffers(ctx, container, args)
	case "admin":
		err = runAdmin(ctx, container, args)
	case "login":
		err = runLogin(ctx, container, args)
	case "register":
		err = runRegister(ctx, container, args)
	case "profile":
		err = runProfile(ctx, container, args)
	case "logout":
		err = container.Session.Logout()
	case "watch":
		err = runWatch(container, cfg)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		stdLog.Fatalf("%s 失败: %v", command, err)
	}
}

func runBrowse(ctx context.Context, c *provider.Container, args []string) error {
	fs := flag.NewFlagSet("browse", flag.ExitOnError)
	category := fs.String("category", constants.CategoryFruitsVegetables, "商品分类")
	add := fs.String("add", "", "加入购物车的商品 ID")
	size := fs.String("size", "", "商品规格")
	qty := fs.Int("qty", 1, "数量")
	fs.Parse(args)

	page := c.CategoryPage(*category)
	if err := page.Load(ctx); err != nil {
		return err
	}
	if *add == "" {
		page.Render(os.Stdout)
		return nil
	}
	for _, product := range page.Products() {
		if product.ID == *add {
			if err := page.AddToCart(ctx, product, *size, *qty); err != nil {
				return err
			}
			fmt.Printf("Added %s to cart\n", product.ProductName)
			return nil
		}
	}
	return fmt.Errorf("product %q not found in %s", *add, *category)
}

func runCart(ctx context.Context, c *provider.Container, args []string) error {
	fs := flag.NewFlagSet("cart", flag.ExitOnError)
	inc := fs.String("inc", "", "数量加一的行标识")
	dec := fs.String("dec", "", "数量减一的行标识")
	remove := fs.String("remove", "", "移除的行标识")
	clear := fs.Bool("clear", false, "清空购物车")
	offerID := fs.String("offer", "", "应用的优惠 ID")
	fs.Parse(args)

	if err := c.Cart.Refresh(ctx); err != nil {
		// 网络不可用时退回本地快照
		c.Cart.LoadCached()
	}
	if _, err := c.Offers.Load(ctx); err != nil {
		return err
	}

	switch {
	case *inc != "":
		if err := c.CartPage.Increment(ctx, *inc); err != nil {
			return err
		}
		// 一次性进程：退出前立即触发防抖中的变更并等刷写完成
		if err := c.Cart.Drain(ctx); err != nil {
			return err
		}
	case *dec != "":
		if err := c.CartPage.Decrement(ctx, *dec); err != nil {
			return err
		}
		if err := c.Cart.Drain(ctx); err != nil {
			return err
		}
	case *remove != "":
		if err := c.CartPage.Remove(ctx, *remove); err != nil {
			return err
		}
	case *clear:
		if err := c.CartPage.Clear(ctx); err != nil {
			return err
		}
	case *offerID != "":
		for _, offer := range c.Offers.Offers() {
			if offer.ID == *offerID {
				return c.CartPage.ApplyOffer(offer)
			}
		}
		return fmt.Errorf("offer %q not found", *offerID)
	}

	c.CartPage.Render(os.Stdout)
	for _, offer := range c.CartPage.AvailableOffers() {
		fmt.Printf("Available offer %s: %s\n", offer.ID, offer.Description)
	}
	return nil
}

func runCheckout(ctx context.Context, c *provider.Container) error {
	if err := c.Cart.Refresh(ctx); err != nil {
		return err
	}
	order, err := c.Placer.PlaceOrder(ctx)
	if err != nil {
		return err
	}
	// 下单后服务端负责购物车的后续状态，本地只刷新视图
	if err := c.Cart.Refresh(ctx); err != nil {
		return err
	}
	fmt.Printf("Order placed: %s\n", order.ID)
	return nil
}

func runOrders(ctx context.Context, c *provider.Container, args []string) error {
	fs := flag.NewFlagSet("orders", flag.ExitOnError)
	bill := fs.String("bill", "", "查看账单的订单 ID")
	cancel := fs.String("cancel", "", "取消的订单 ID")
	fs.Parse(args)

	if err := c.OrdersPage.Load(ctx); err != nil {
		return err
	}
	switch {
	case *bill != "":
		return c.OrdersPage.RenderBill(os.Stdout, *bill)
	case *cancel != "":
		if err := c.OrdersPage.Cancel(ctx, *cancel); err != nil {
			return err
		}
		fmt.Printf("Order %s cancelled\n", *cancel)
		return nil
	}
	c.OrdersPage.Render(os.Stdout)
	return nil
}

func runOffers(ctx context.Context, c *provider.Container, args []string) error {
	fs := flag.NewFlagSet("offers", flag.ExitOnError)
	create := fs.Bool("create", false, "新建优惠")
	update := fs.Bool("update", false, "更新优惠")
	del := fs.Bool("delete", false, "删除优惠")
	id := fs.String("id", "", "优惠 ID")
	product := fs.String("product", "", "商品名")
	desc := fs.String("desc", "", "描述")
	min := fs.String("min", "", "起购金额")
	discount := fs.String("discount", "", "折扣百分比")
	fs.Parse(args)

	if err := c.OffersAdmin.Load(ctx); err != nil {
		return err
	}
	switch {
	case *create:
		return c.OffersAdmin.Create(ctx, offerForm(*id, *product, *desc, *min, *discount))
	case *update:
		return c.OffersAdmin.Update(ctx, offerForm(*id, *product, *desc, *min, *discount))
	case *del:
		return c.OffersAdmin.Delete(ctx, *id)
	}
	c.OffersAdmin.Render(os.Stdout)
	return nil
}

func runAdmin(ctx context.Context, c *provider.Container, args []string) error {
	fs := flag.NewFlagSet("admin", flag.ExitOnError)
	status := fs.String("status", "", "订单状态更新，格式 orderID=status")
	removeItem := fs.String("remove-item", "", "移除订单商品，格式 orderID/itemID")
	createProduct := fs.Bool("create-product", false, "新建商品")
	category := fs.String("category", "", "商品分类")
	name := fs.String("name", "", "商品名")
	image := fs.String("image", "", "商品图片 URL")
	sizes := fs.String("sizes", "", "规格列表，格式 size=price[,size=price...]")
	fs.Parse(args)

	if *createProduct {
		form := views.ProductForm{
			Category:    *category,
			ProductName: *name,
			ImageURL:    *image,
		}
		for _, pair := range strings.Split(*sizes, ",") {
			if pair == "" {
				continue
			}
			size, price, _ := strings.Cut(pair, "=")
			form.Sizes = append(form.Sizes, views.SizeField{Size: size, Price: price})
		}
		if err := c.ProductAdmin.Create(ctx, form); err != nil {
			return err
		}
		fmt.Printf("Product %s created\n", *name)
		return nil
	}

	if err := c.Admin.Load(ctx); err != nil {
		return err
	}
	switch {
	case *status != "":
		orderID, newStatus, ok := strings.Cut(*status, "=")
		if !ok {
			return fmt.Errorf("invalid -status value %q", *status)
		}
		return c.Admin.UpdateStatus(ctx, orderID, newStatus)
	case *removeItem != "":
		orderID, itemID, ok := strings.Cut(*removeItem, "/")
		if !ok {
			return fmt.Errorf("invalid -remove-item value %q", *removeItem)
		}
		return c.Admin.RemoveItem(ctx, orderID, itemID)
	}
	c.Admin.Render(os.Stdout)
	return nil
}

func runLogin(ctx context.Context, c *provider.Container, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "邮箱")
	password := fs.String("password", "", "密码")
	fs.Parse(args)
	return c.Login.Submit(ctx, os.Stdout, *email, *password)
}

func runRegister(ctx context.Context, c *provider.Container, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "姓名")
	email := fs.String("email", "", "邮箱")
	password := fs.String("password", "", "密码")
	number := fs.String("number", "", "电话")
	address := fs.String("address", "", "地址")
	fs.Parse(args)
	return c.Login.SubmitRegister(ctx, os.Stdout, gateway.RegisterInput{
		Name:     *name,
		Email:    *email,
		Password: *password,
		Number:   *number,
		Address:  *address,
	})
}

func runProfile(ctx context.Context, c *provider.Container, args []string) error {
	fs := flag.NewFlagSet("profile", flag.ExitOnError)
	name := fs.String("name", "", "姓名")
	number := fs.String("number", "", "电话")
	address := fs.String("address", "", "地址")
	fs.Parse(args)

	if err := c.Profile.Load(ctx); err != nil {
		return err
	}
	if *name == "" && *number == "" && *address == "" {
		c.Profile.Render(os.Stdout)
		return nil
	}
	user := *c.Profile.User()
	if *name != "" {
		user.Name = *name
	}
	if *number != "" {
		user.Number = *number
	}
	if *address != "" {
		user.Address = *address
	}
	if err := c.Profile.Update(ctx, user); err != nil {
		return err
	}
	c.Profile.Render(os.Stdout)
	return nil
}

func runWatch(c *provider.Container, cfg *config.Config) error {
	c.Notifier.OnOrderPlaced(func(order models.Order) {
		fmt.Printf("New order %s (%d items)\n", order.ID, len(order.Items))
	})
	c.Notifier.OnOrderUpdated(func(order models.Order) {
		fmt.Printf("Order %s is now %s\n", order.ID, order.Status)
	})
	return app.Run(c, app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	})
}

// offerForm 组装优惠表单
func offerForm(id, product, desc, min, discount string) views.OfferForm {
	return views.OfferForm{
		ID:          id,
		ProductName: product,
		Description: desc,
		MinPurchase: min,
		Discount:    discount,
	}
}
