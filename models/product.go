package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/pos_backend/config"
	"bitbucket.org/mmdatafocus/pos_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Product struct {
	ID            int             `gorm:"primary_key" json:"id"`
	CompanyId     string          `gorm:"index;not null" json:"company_id" binding:"required"`
	SubsidiaryId  int             `gorm:"index;not null" json:"subsidiary_id" binding:"required"`
	Code          string          `gorm:"size:50;not null" json:"code" binding:"required"`
	Name          string          `gorm:"size:255;not null" json:"name" binding:"required"`
	Alias         string          `gorm:"size:255" json:"alias"`
	CategoryId    int             `gorm:"index" json:"category_id"`
	SubCategoryId int             `gorm:"index" json:"sub_category_id"`
	UnitMeasureId int             `gorm:"index" json:"unit_measure_id"`
	Laboratory    string          `gorm:"size:150" json:"laboratory"`
	Quantity      decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"quantity"`
	Price         decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"price"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"purchase_price"`
	DueDate       *time.Time      `json:"due_date"`
	ImageUrl      string          `json:"image_url"`
	IsActive      *bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewProduct struct {
	SubsidiaryId  int             `json:"subsidiary_id" binding:"required"`
	Code          string          `json:"code" binding:"required"`
	Name          string          `json:"name" binding:"required"`
	Alias         string          `json:"alias"`
	CategoryId    int             `json:"category_id"`
	SubCategoryId int             `json:"sub_category_id"`
	UnitMeasureId int             `json:"unit_measure_id"`
	Laboratory    string          `json:"laboratory"`
	Quantity      decimal.Decimal `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	DueDate       *time.Time      `json:"due_date"`
}

type ProductsEdge Edge[Product]

type ProductsConnection struct {
	PageInfo *PageInfo       `json:"pageInfo"`
	Edges    []*ProductsEdge `json:"edges"`
}

func (obj Product) GetCompanyId() string { return obj.CompanyId }

func (p Product) GetCursor() string {
	return p.Name
}

// validate input for both create & update. (id = 0 for create)
func (input *NewProduct) validate(ctx context.Context, companyId string, id int) error {
	if err := utils.ValidateUnique[Product](ctx, companyId, "code", input.Code, id); err != nil {
		return err
	}
	if err := utils.ValidateResourceId[Subsidiary](ctx, companyId, input.SubsidiaryId); err != nil {
		return errors.New("subsidiary not found")
	}
	if input.CategoryId > 0 {
		if err := utils.ValidateResourceId[Category](ctx, companyId, input.CategoryId); err != nil {
			return errors.New("category not found")
		}
	}
	if input.SubCategoryId > 0 {
		if err := utils.ValidateResourceId[SubCategory](ctx, companyId, input.SubCategoryId); err != nil {
			return errors.New("sub category not found")
		}
	}
	if input.UnitMeasureId > 0 {
		if err := utils.ValidateResourceId[UnitMeasure](ctx, companyId, input.UnitMeasureId); err != nil {
			return errors.New("unit measure not found")
		}
	}
	if input.Quantity.IsNegative() {
		return errors.New("quantity cannot be negative")
	}
	if input.Price.IsNegative() || input.PurchasePrice.IsNegative() {
		return errors.New("price cannot be negative")
	}
	return nil
}

func CreateProduct(ctx context.Context, input *NewProduct) (*Product, error) {
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}
	if err := input.validate(ctx, companyId, 0); err != nil {
		return nil, err
	}

	product := Product{
		CompanyId:     companyId,
		SubsidiaryId:  input.SubsidiaryId,
		Code:          input.Code,
		Name:          input.Name,
		Alias:         input.Alias,
		CategoryId:    input.CategoryId,
		SubCategoryId: input.SubCategoryId,
		UnitMeasureId: input.UnitMeasureId,
		Laboratory:    input.Laboratory,
		Quantity:      input.Quantity,
		Price:         input.Price,
		PurchasePrice: input.PurchasePrice,
		DueDate:       input.DueDate,
		IsActive:      utils.NewTrue(),
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, err
	}
	if err := utils.RemoveRedisList[Product](companyId); err != nil {
		return nil, err
	}
	return &product, nil
}

func UpdateProduct(ctx context.Context, id int, input *NewProduct) (*Product, error) {
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}

	product, err := utils.FetchModel[Product](ctx, companyId, id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(ctx, companyId, id); err != nil {
		return nil, err
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(&product).Updates(map[string]interface{}{
		"SubsidiaryId":  input.SubsidiaryId,
		"Code":          input.Code,
		"Name":          input.Name,
		"Alias":         input.Alias,
		"CategoryId":    input.CategoryId,
		"SubCategoryId": input.SubCategoryId,
		"UnitMeasureId": input.UnitMeasureId,
		"Laboratory":    input.Laboratory,
		"Quantity":      input.Quantity,
		"Price":         input.Price,
		"PurchasePrice": input.PurchasePrice,
		"DueDate":       input.DueDate,
	}).Error
	if err != nil {
		return nil, err
	}

	if err := RemoveRedisBoth(*product); err != nil {
		return nil, err
	}
	return product, nil
}

func DeleteProduct(ctx context.Context, id int) (*Product, error) {
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}

	product, err := utils.FetchModel[Product](ctx, companyId, id)
	if err != nil {
		return nil, err
	}

	// products referenced by sale or purchase lines stay for the audit trail
	count, err := utils.ResourceCountWhere[SaleDetail](ctx, companyId, "product_id = ?", id)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		count, err = utils.ResourceCountWhere[PurchaseDetail](ctx, companyId, "product_id = ?", id)
		if err != nil {
			return nil, err
		}
	}
	if count > 0 {
		return nil, errors.New("product has movements and cannot be deleted")
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(&product).Error; err != nil {
		return nil, err
	}
	if err := RemoveRedisBoth(*product); err != nil {
		return nil, err
	}
	return product, nil
}

func GetProduct(ctx context.Context, id int) (*Product, error) {
	return GetResource[Product](ctx, id)
}

func GetProducts(ctx context.Context, subsidiaryId *int, search *string) ([]*Product, error) {
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("company_id = ?", companyId)
	if subsidiaryId != nil && *subsidiaryId > 0 {
		dbCtx = dbCtx.Where("subsidiary_id = ?", *subsidiaryId)
	}
	if search != nil && *search != "" {
		pattern := "%" + *search + "%"
		dbCtx = dbCtx.Where("name LIKE ? OR alias LIKE ? OR code LIKE ?", pattern, pattern, pattern)
	}
	var results []*Product
	if err := dbCtx.Order("name").Limit(config.SearchLimit * 5).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func PaginateProducts(ctx context.Context, limit *int, after *string, subsidiaryId *int, categoryId *int) (*ProductsConnection, error) {
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("company_id = ?", companyId)

	if subsidiaryId != nil && *subsidiaryId > 0 {
		dbCtx.Where("subsidiary_id = ?", *subsidiaryId)
	}
	if categoryId != nil && *categoryId > 0 {
		dbCtx.Where("category_id = ?", *categoryId)
	}

	edges, pageInfo, err := FetchPageCompositeCursor[Product](dbCtx, *limit, after, "name", ">")
	if err != nil {
		return nil, err
	}
	var connection ProductsConnection
	connection.PageInfo = pageInfo
	for _, edge := range edges {
		productsEdge := ProductsEdge(edge)
		connection.Edges = append(connection.Edges, &productsEdge)
	}
	return &connection, nil
}

func ToggleActiveProduct(ctx context.Context, id int, isActive bool) (*Product, error) {
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}
	return ToggleActiveModel[Product](ctx, companyId, id, isActive)
}

func SetProductImageUrl(ctx context.Context, id int, imageUrl string) (*Product, error) {
	companyId, ok := utils.GetCompanyIdFromContext(ctx)
	if !ok || companyId == "" {
		return nil, errors.New("company id is required")
	}
	product, err := utils.FetchModel[Product](ctx, companyId, id)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Model(&product).Update("ImageUrl", imageUrl).Error; err != nil {
		return nil, err
	}
	if err := RemoveRedisBoth(*product); err != nil {
		return nil, err
	}
	return product, nil
}

/* stock */

// fetchProductForStock locks the product row inside the caller's transaction.
func fetchProductForStock(tx *gorm.DB, ctx context.Context, companyId string, productId int) (*Product, error) {
	var product Product
	err := tx.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("company_id = ?", companyId).First(&product, productId).Error
	if err != nil {
		return nil, errors.New("product not found")
	}
	return &product, nil
}

// ValidateProductStock checks the product has enough stock for outQty,
// reading through the caller's transaction so uncommitted decrements count.
func ValidateProductStock(tx *gorm.DB, ctx context.Context, companyId string, productId int, outQty decimal.Decimal) error {
	if config.AllowNegativeStock() {
		return nil
	}
	product, err := fetchProductForStock(tx, ctx, companyId, productId)
	if err != nil {
		return err
	}
	if product.Quantity.LessThan(outQty) {
		return errors.New("input qty is more than the current stock on hand")
	}
	return nil
}

// AdjustProductStock applies a signed quantity delta within the caller's transaction.
func AdjustProductStock(tx *gorm.DB, ctx context.Context, companyId string, productId int, delta decimal.Decimal) error {
	product, err := fetchProductForStock(tx, ctx, companyId, productId)
	if err != nil {
		return err
	}
	newQty := product.Quantity.Add(delta)
	if newQty.IsNegative() && !config.AllowNegativeStock() {
		return errors.New("product stock cannot be negative")
	}
	if err := tx.WithContext(ctx).Model(&product).Update("Quantity", newQty).Error; err != nil {
		return err
	}
	return utils.RemoveRedisItem[Product](productId)
}
