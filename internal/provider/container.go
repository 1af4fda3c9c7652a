package provider

import (
	"github.com/vegvendor-client/internal/cart"
	"github.com/vegvendor-client/internal/checkout"
	"github.com/vegvendor-client/internal/config"
	"github.com/vegvendor-client/internal/gateway"
	"github.com/vegvendor-client/internal/logger"
	"github.com/vegvendor-client/internal/notifier"
	"github.com/vegvendor-client/internal/offers"
	"github.com/vegvendor-client/internal/session"
	"github.com/vegvendor-client/internal/storage"
	"github.com/vegvendor-client/internal/views"
)

// Container 依赖注入容器
type Container struct {
	Config *config.Config
	Store  storage.Store

	Gateway  *gateway.Client
	Cart     *cart.Engine
	Offers   *offers.Calculator
	Session  *session.Manager
	Placer   *checkout.Placer
	Notifier *notifier.Notifier

	// Pages
	CartPage     *views.CartPage
	OrdersPage   *views.OrdersPage
	Admin        *views.AdminDashboard
	OffersAdmin  *views.OffersPage
	ProductAdmin *views.ProductAdmin
	Profile      *views.ProfilePage
	Login        *views.LoginPage
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 本地会话存储：文件存储不可用时退化为内存存储
	var store storage.Store
	fileStore, err := storage.NewFileStore(cfg.Session.Dir)
	if err != nil {
		logger.Warnw("provider_init_file_store_failed", "dir", cfg.Session.Dir, "error", err)
		store = storage.NewMemStore()
	} else {
		store = fileStore
	}

	c := &Container{
		Config: cfg,
		Store:  store,
	}

	c.Gateway = gateway.NewClient(gateway.Options{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout(),
		Store:   store,
	})

	c.Cart = cart.NewEngine(cart.Options{
		Gateway:  c.Gateway,
		Store:    store,
		Debounce: cfg.Cart.Debounce(),
	})

	c.Offers = offers.NewCalculator(offers.Options{
		Gateway: c.Gateway,
		Store:   store,
	})

	c.Session = session.NewManager(session.Options{
		Gateway: c.Gateway,
		Store:   store,
	})

	c.Placer = checkout.NewPlacer(checkout.Options{
		Gateway: c.Gateway,
		Cart:    c.Cart,
		Offers:  c.Offers,
	})

	c.Notifier = notifier.New(notifier.Options{
		URL:               cfg.Socket.URL,
		ReconnectInterval: cfg.Socket.ReconnectInterval(),
	})

	c.initPages()
	return c
}

func (c *Container) initPages() {
	c.CartPage = views.NewCartPage(views.CartPageOptions{
		Engine:        c.Cart,
		Offers:        c.Offers,
		ShippingFee:   c.Config.Shipping.Fee,
		FreeThreshold: c.Config.Shipping.FreeThreshold,
	})
	c.OrdersPage = views.NewOrdersPage(c.Gateway)
	c.Admin = views.NewAdminDashboard(c.Gateway)
	c.OffersAdmin = views.NewOffersPage(c.Gateway)
	c.ProductAdmin = views.NewProductAdmin(c.Gateway)
	c.Profile = views.NewProfilePage(c.Gateway, c.Session)
	c.Login = views.NewLoginPage(c.Session)
}

// CategoryPage 创建指定分类的分类页
func (c *Container) CategoryPage(category string) *views.CategoryPage {
	return views.NewCategoryPage(c.Gateway, c.Cart, category)
}
