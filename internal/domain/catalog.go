package domain

import "time"

// CatalogItem is one entry in the rakhi or add-on catalog. Read-only from
// the checkout flow's perspective; mutated only through admin CRUD.
type CatalogItem struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Price       float64   `bson:"price" json:"price"`
	Image       string    `bson:"image,omitempty" json:"image,omitempty"`
	Category    string    `bson:"category,omitempty" json:"category,omitempty"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

// StoreConfig is the storefront settings document served to clients.
type StoreConfig struct {
	ID                string   `bson:"id" json:"id"`
	AppName           string   `bson:"app_name" json:"appName"`
	AppDescription    string   `bson:"app_description" json:"appDescription"`
	ThemeColor        string   `bson:"theme_color" json:"themeColor"`
	MaxPhotoSizeMB    int      `bson:"max_photo_size_mb" json:"maxPhotoSizeMB"`
	AllowedImageTypes []string `bson:"allowed_image_types" json:"allowedImageTypes"`
	DeliveryDays      int      `bson:"delivery_days" json:"deliveryDays"`
	FreeDeliveryAbove float64  `bson:"free_delivery_above" json:"freeDeliveryAbove"`
	DeliveryCharge    float64  `bson:"delivery_charge" json:"deliveryCharge"`
}
