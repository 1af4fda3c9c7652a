package constants

// 订单状态常量
const (
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

// 本地会话存储键常量
const (
	StorageKeyToken          = "token"
	StorageKeyAdminToken     = "admintoken"
	StorageKeyStaffToken     = "stafftoken"
	StorageKeyDisabledOffers = "disabledOffers"
	StorageKeyCachedCart     = "cachedCart"
)

// 用户角色常量
const (
	RoleCustomer = "customer"
	RoleStaff    = "staff"
	RoleAdmin    = "admin"
)

// 商品分类常量
const (
	CategoryRiceDaal          = "rice-daal"
	CategoryOilGhee           = "oil-ghee"
	CategoryFruitsVegetables  = "fruits-vegetables"
	CategorySpices            = "spices"
	CategoryCakes             = "cakes"
	CategoryKurkureChips      = "kurkure-chips"
	CategoryBiscuits          = "biscuits"
	CategoryMunch             = "munch"
	CategoryPersonalCare      = "personal-care"
	CategoryHouseholdCleaning = "household-cleaning"
	CategoryBeverages         = "beverages"
	CategoryDryFruits         = "dry-fruits"
)

// 分类计量单位常量
const (
	UnitKilogram   = "kg"
	UnitGram       = "g"
	UnitPiece      = "piece"
	UnitPacket     = "packet"
	UnitMillilitre = "ml"
	UnitGeneric    = "unit"
)

// 实时事件名称常量
const (
	EventOrderPlaced  = "orderPlaced"
	EventOrderUpdated = "orderUpdated"
)

// CategoryUnits 分类到计量单位的映射
var CategoryUnits = map[string]string{
	CategoryRiceDaal:          UnitKilogram,
	CategoryOilGhee:           UnitKilogram,
	CategoryFruitsVegetables:  UnitKilogram,
	CategorySpices:            UnitGram,
	CategoryCakes:             UnitPiece,
	CategoryKurkureChips:      UnitPacket,
	CategoryBiscuits:          UnitPacket,
	CategoryMunch:             UnitPacket,
	CategoryPersonalCare:      UnitGeneric,
	CategoryHouseholdCleaning: UnitGeneric,
	CategoryBeverages:         UnitMillilitre,
	CategoryDryFruits:         UnitGram,
}

// OrderStatuses 合法的订单状态集合
var OrderStatuses = []string{
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// IsOrderStatus 判断是否为合法订单状态
func IsOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}
