package graph

// This file will be automatically regenerated based on the schema, any resolver implementations
// will be copied through when generating and any unknown code will be moved to the end.
// Code generated by github.com/99designs/gqlgen version v0.17.41

import (
	"context"
	"time"

	"bitbucket.org/mmdatafocus/pos_backend/middlewares"
	"bitbucket.org/mmdatafocus/pos_backend/models"
	"bitbucket.org/mmdatafocus/pos_backend/models/reports"
	"github.com/shopspring/decimal"
)

// ID is the resolver for the id field.
func (r *companyResolver) ID(ctx context.Context, obj *models.Company) (string, error) {
	return obj.ID.String(), nil
}

// Charge is the resolver for the charge field.
func (r *employeeResolver) Charge(ctx context.Context, obj *models.Employee) (*models.Charge, error) {
	if obj.ChargeId == 0 {
		return nil, nil
	}
	return middlewares.GetCharge(ctx, obj.ChargeId)
}

// Subsidiary is the resolver for the subsidiary field.
func (r *employeeResolver) Subsidiary(ctx context.Context, obj *models.Employee) (*models.Subsidiary, error) {
	return middlewares.GetSubsidiary(ctx, obj.SubsidiaryId)
}

// Login is the resolver for the login field.
func (r *mutationResolver) Login(ctx context.Context, username string, password string) (*models.LoginInfo, error) {
	return models.Login(ctx, username, password)
}

// Logout is the resolver for the logout field.
func (r *mutationResolver) Logout(ctx context.Context) (bool, error) {
	return models.Logout(ctx)
}

// Register is the resolver for the register field.
func (r *mutationResolver) Register(ctx context.Context, input models.NewUser) (*models.User, error) {
	return registerUser(ctx, &input)
}

// UpdateCompany is the resolver for the updateCompany field.
func (r *mutationResolver) UpdateCompany(ctx context.Context, input models.NewCompany) (*models.Company, error) {
	return models.UpdateCompany(ctx, &input)
}

// CreateSubsidiary is the resolver for the createSubsidiary field.
func (r *mutationResolver) CreateSubsidiary(ctx context.Context, input models.NewSubsidiary) (*models.Subsidiary, error) {
	return models.CreateSubsidiary(ctx, &input)
}

// UpdateSubsidiary is the resolver for the updateSubsidiary field.
func (r *mutationResolver) UpdateSubsidiary(ctx context.Context, id int, input models.NewSubsidiary) (*models.Subsidiary, error) {
	return models.UpdateSubsidiary(ctx, id, &input)
}

// DeleteSubsidiary is the resolver for the deleteSubsidiary field.
func (r *mutationResolver) DeleteSubsidiary(ctx context.Context, id int) (*models.Subsidiary, error) {
	return models.DeleteSubsidiary(ctx, id)
}

// ToggleActiveSubsidiary is the resolver for the toggleActiveSubsidiary field.
func (r *mutationResolver) ToggleActiveSubsidiary(ctx context.Context, id int, isActive bool) (*models.Subsidiary, error) {
	return models.ToggleActiveSubsidiary(ctx, id, isActive)
}

// CreateCharge is the resolver for the createCharge field.
func (r *mutationResolver) CreateCharge(ctx context.Context, input models.NewCharge) (*models.Charge, error) {
	return models.CreateCharge(ctx, &input)
}

// DeleteCharge is the resolver for the deleteCharge field.
func (r *mutationResolver) DeleteCharge(ctx context.Context, id int) (*models.Charge, error) {
	return models.DeleteCharge(ctx, id)
}

// CreateEmployee is the resolver for the createEmployee field.
func (r *mutationResolver) CreateEmployee(ctx context.Context, input models.NewEmployee) (*models.Employee, error) {
	return models.CreateEmployee(ctx, &input)
}

// UpdateEmployee is the resolver for the updateEmployee field.
func (r *mutationResolver) UpdateEmployee(ctx context.Context, id int, input models.NewEmployee) (*models.Employee, error) {
	return models.UpdateEmployee(ctx, id, &input)
}

// ToggleActiveEmployee is the resolver for the toggleActiveEmployee field.
func (r *mutationResolver) ToggleActiveEmployee(ctx context.Context, id int, isActive bool) (*models.Employee, error) {
	return models.ToggleActiveEmployee(ctx, id, isActive)
}

// CreateCategory is the resolver for the createCategory field.
func (r *mutationResolver) CreateCategory(ctx context.Context, input models.NewCategory) (*models.Category, error) {
	return models.CreateCategory(ctx, &input)
}

// UpdateCategory is the resolver for the updateCategory field.
func (r *mutationResolver) UpdateCategory(ctx context.Context, id int, input models.NewCategory) (*models.Category, error) {
	return models.UpdateCategory(ctx, id, &input)
}

// ToggleActiveCategory is the resolver for the toggleActiveCategory field.
func (r *mutationResolver) ToggleActiveCategory(ctx context.Context, id int, isActive bool) (*models.Category, error) {
	return models.ToggleActiveCategory(ctx, id, isActive)
}

// CreateSubCategory is the resolver for the createSubCategory field.
func (r *mutationResolver) CreateSubCategory(ctx context.Context, input models.NewSubCategory) (*models.SubCategory, error) {
	return models.CreateSubCategory(ctx, &input)
}

// CreateUnitMeasure is the resolver for the createUnitMeasure field.
func (r *mutationResolver) CreateUnitMeasure(ctx context.Context, input models.NewUnitMeasure) (*models.UnitMeasure, error) {
	return models.CreateUnitMeasure(ctx, &input)
}

// CreateProduct is the resolver for the createProduct field.
func (r *mutationResolver) CreateProduct(ctx context.Context, input models.NewProduct) (*models.Product, error) {
	return models.CreateProduct(ctx, &input)
}

// UpdateProduct is the resolver for the updateProduct field.
func (r *mutationResolver) UpdateProduct(ctx context.Context, id int, input models.NewProduct) (*models.Product, error) {
	return models.UpdateProduct(ctx, id, &input)
}

// DeleteProduct is the resolver for the deleteProduct field.
func (r *mutationResolver) DeleteProduct(ctx context.Context, id int) (*models.Product, error) {
	return models.DeleteProduct(ctx, id)
}

// ToggleActiveProduct is the resolver for the toggleActiveProduct field.
func (r *mutationResolver) ToggleActiveProduct(ctx context.Context, id int, isActive bool) (*models.Product, error) {
	return models.ToggleActiveProduct(ctx, id, isActive)
}

// CreateClientSupplier is the resolver for the createClientSupplier field.
func (r *mutationResolver) CreateClientSupplier(ctx context.Context, input models.NewClientSupplier) (*models.ClientSupplier, error) {
	return models.CreateClientSupplier(ctx, &input)
}

// UpdateClientSupplier is the resolver for the updateClientSupplier field.
func (r *mutationResolver) UpdateClientSupplier(ctx context.Context, id int, input models.NewClientSupplier) (*models.ClientSupplier, error) {
	return models.UpdateClientSupplier(ctx, id, &input)
}

// ToggleActiveClientSupplier is the resolver for the toggleActiveClientSupplier field.
func (r *mutationResolver) ToggleActiveClientSupplier(ctx context.Context, id int, isActive bool) (*models.ClientSupplier, error) {
	return models.ToggleActiveClientSupplier(ctx, id, isActive)
}

// CreateSale is the resolver for the createSale field.
func (r *mutationResolver) CreateSale(ctx context.Context, input models.NewSale) (*models.Sale, error) {
	ctx, span := r.Tracer.Start(ctx, "createSale")
	defer span.End()
	return models.CreateSale(ctx, &input)
}

// CancelSale is the resolver for the cancelSale field.
func (r *mutationResolver) CancelSale(ctx context.Context, id int) (*models.Sale, error) {
	return models.CancelSale(ctx, id)
}

// CreatePurchase is the resolver for the createPurchase field.
func (r *mutationResolver) CreatePurchase(ctx context.Context, input models.NewPurchase) (*models.Purchase, error) {
	return models.CreatePurchase(ctx, &input)
}

// UpdatePurchase is the resolver for the updatePurchase field.
func (r *mutationResolver) UpdatePurchase(ctx context.Context, id int, input models.NewPurchase) (*models.Purchase, error) {
	return models.UpdatePurchase(ctx, id, &input)
}

// OpenTill is the resolver for the openTill field.
func (r *mutationResolver) OpenTill(ctx context.Context, input models.NewTill) (*models.Till, error) {
	ctx, span := r.Tracer.Start(ctx, "openTill")
	defer span.End()
	return models.OpenTill(ctx, &input)
}

// CloseTill is the resolver for the closeTill field.
func (r *mutationResolver) CloseTill(ctx context.Context, tillID int, countedAmount decimal.Decimal, closingUser string) (*models.CloseTillResult, error) {
	ctx, span := r.Tracer.Start(ctx, "closeTill")
	defer span.End()
	till, summary, err := models.CloseTill(ctx, tillID, countedAmount, closingUser)
	if err != nil {
		return nil, err
	}
	return &models.CloseTillResult{Till: till, Summary: summary}, nil
}

// RecordPayment is the resolver for the recordPayment field.
func (r *mutationResolver) RecordPayment(ctx context.Context, input models.NewPayment) (*models.Payment, error) {
	ctx, span := r.Tracer.Start(ctx, "recordPayment")
	defer span.End()
	return models.RecordPayment(ctx, &input)
}

// CancelPayment is the resolver for the cancelPayment field.
func (r *mutationResolver) CancelPayment(ctx context.Context, id int) (*models.Payment, error) {
	return models.CancelPayment(ctx, id)
}

// Subsidiary is the resolver for the subsidiary field.
func (r *paymentResolver) Subsidiary(ctx context.Context, obj *models.Payment) (*models.Subsidiary, error) {
	return middlewares.GetSubsidiary(ctx, obj.SubsidiaryId)
}

// Till is the resolver for the till field.
func (r *paymentResolver) Till(ctx context.Context, obj *models.Payment) (*models.Till, error) {
	return middlewares.GetTill(ctx, obj.TillId)
}

// Sale is the resolver for the sale field.
func (r *paymentResolver) Sale(ctx context.Context, obj *models.Payment) (*models.Sale, error) {
	if obj.SaleId == nil {
		return nil, nil
	}
	return middlewares.GetSale(ctx, *obj.SaleId)
}

// Purchase is the resolver for the purchase field.
func (r *paymentResolver) Purchase(ctx context.Context, obj *models.Payment) (*models.Purchase, error) {
	if obj.PurchaseId == nil {
		return nil, nil
	}
	return middlewares.GetPurchase(ctx, *obj.PurchaseId)
}

// Subsidiary is the resolver for the subsidiary field.
func (r *productResolver) Subsidiary(ctx context.Context, obj *models.Product) (*models.Subsidiary, error) {
	return middlewares.GetSubsidiary(ctx, obj.SubsidiaryId)
}

// Category is the resolver for the category field.
func (r *productResolver) Category(ctx context.Context, obj *models.Product) (*models.Category, error) {
	if obj.CategoryId == 0 {
		return nil, nil
	}
	return middlewares.GetCategory(ctx, obj.CategoryId)
}

// SubCategory is the resolver for the subCategory field.
func (r *productResolver) SubCategory(ctx context.Context, obj *models.Product) (*models.SubCategory, error) {
	if obj.SubCategoryId == 0 {
		return nil, nil
	}
	return middlewares.GetSubCategory(ctx, obj.SubCategoryId)
}

// UnitMeasure is the resolver for the unitMeasure field.
func (r *productResolver) UnitMeasure(ctx context.Context, obj *models.Product) (*models.UnitMeasure, error) {
	if obj.UnitMeasureId == 0 {
		return nil, nil
	}
	return middlewares.GetUnitMeasure(ctx, obj.UnitMeasureId)
}

// Subsidiary is the resolver for the subsidiary field.
func (r *purchaseResolver) Subsidiary(ctx context.Context, obj *models.Purchase) (*models.Subsidiary, error) {
	return middlewares.GetSubsidiary(ctx, obj.SubsidiaryId)
}

// Supplier is the resolver for the supplier field.
func (r *purchaseResolver) Supplier(ctx context.Context, obj *models.Purchase) (*models.ClientSupplier, error) {
	if obj.SupplierId == 0 {
		return nil, nil
	}
	return middlewares.GetClientSupplier(ctx, obj.SupplierId)
}

// Details is the resolver for the details field.
func (r *purchaseResolver) Details(ctx context.Context, obj *models.Purchase) ([]*models.PurchaseDetail, error) {
	return middlewares.GetPurchaseDetails(ctx, obj.ID)
}

// Product is the resolver for the product field.
func (r *purchaseDetailResolver) Product(ctx context.Context, obj *models.PurchaseDetail) (*models.Product, error) {
	return middlewares.GetProduct(ctx, obj.ProductId)
}

// Me is the resolver for the me field.
func (r *queryResolver) Me(ctx context.Context) (*models.User, error) {
	return currentUser(ctx)
}

// Company is the resolver for the company field.
func (r *queryResolver) Company(ctx context.Context) (*models.Company, error) {
	return models.GetCompany(ctx)
}

// Users is the resolver for the users field.
func (r *queryResolver) Users(ctx context.Context) ([]*models.User, error) {
	return models.GetAllUsers(ctx)
}

// Subsidiaries is the resolver for the subsidiaries field.
func (r *queryResolver) Subsidiaries(ctx context.Context) ([]*models.Subsidiary, error) {
	return models.GetSubsidiaries(ctx)
}

// Subsidiary is the resolver for the subsidiary field.
func (r *queryResolver) Subsidiary(ctx context.Context, id int) (*models.Subsidiary, error) {
	return models.GetSubsidiary(ctx, id)
}

// Charges is the resolver for the charges field.
func (r *queryResolver) Charges(ctx context.Context) ([]*models.Charge, error) {
	return models.GetCharges(ctx)
}

// Employees is the resolver for the employees field.
func (r *queryResolver) Employees(ctx context.Context, subsidiaryID *int) ([]*models.Employee, error) {
	return models.GetEmployees(ctx, subsidiaryID)
}

// Employee is the resolver for the employee field.
func (r *queryResolver) Employee(ctx context.Context, id int) (*models.Employee, error) {
	return models.GetEmployee(ctx, id)
}

// Categories is the resolver for the categories field.
func (r *queryResolver) Categories(ctx context.Context) ([]*models.Category, error) {
	return models.GetCategories(ctx)
}

// SubCategories is the resolver for the subCategories field.
func (r *queryResolver) SubCategories(ctx context.Context, categoryID *int) ([]*models.SubCategory, error) {
	return models.GetSubCategories(ctx, categoryID)
}

// UnitMeasures is the resolver for the unitMeasures field.
func (r *queryResolver) UnitMeasures(ctx context.Context) ([]*models.UnitMeasure, error) {
	return models.GetUnitMeasures(ctx)
}

// Products is the resolver for the products field.
func (r *queryResolver) Products(ctx context.Context, subsidiaryID *int, search *string) ([]*models.Product, error) {
	return models.GetProducts(ctx, subsidiaryID, search)
}

// Product is the resolver for the product field.
func (r *queryResolver) Product(ctx context.Context, id int) (*models.Product, error) {
	return models.GetProduct(ctx, id)
}

// PaginateProducts is the resolver for the paginateProducts field.
func (r *queryResolver) PaginateProducts(ctx context.Context, limit *int, after *string, subsidiaryID *int, categoryID *int) (*models.ProductsConnection, error) {
	return models.PaginateProducts(ctx, limit, after, subsidiaryID, categoryID)
}

// ClientSuppliers is the resolver for the clientSuppliers field.
func (r *queryResolver) ClientSuppliers(ctx context.Context, isClient *bool, isSupplier *bool, search *string) ([]*models.ClientSupplier, error) {
	return models.GetClientSuppliers(ctx, isClient, isSupplier, search)
}

// ClientSupplier is the resolver for the clientSupplier field.
func (r *queryResolver) ClientSupplier(ctx context.Context, id int) (*models.ClientSupplier, error) {
	return models.GetClientSupplier(ctx, id)
}

// Sale is the resolver for the sale field.
func (r *queryResolver) Sale(ctx context.Context, id int) (*models.Sale, error) {
	return models.GetSale(ctx, id)
}

// PaginateSales is the resolver for the paginateSales field.
func (r *queryResolver) PaginateSales(ctx context.Context, limit *int, after *string, subsidiaryID *int, fromDate *time.Time, toDate *time.Time) (*models.SalesConnection, error) {
	return models.PaginateSales(ctx, limit, after, subsidiaryID, fromDate, toDate)
}

// Purchase is the resolver for the purchase field.
func (r *queryResolver) Purchase(ctx context.Context, id int) (*models.Purchase, error) {
	return models.GetPurchase(ctx, id)
}

// PaginatePurchases is the resolver for the paginatePurchases field.
func (r *queryResolver) PaginatePurchases(ctx context.Context, limit *int, after *string, subsidiaryID *int, fromDate *time.Time, toDate *time.Time) (*models.PurchasesConnection, error) {
	return models.PaginatePurchases(ctx, limit, after, subsidiaryID, fromDate, toDate)
}

// OpenTill is the resolver for the openTill field.
func (r *queryResolver) OpenTill(ctx context.Context, subsidiaryID int) (*models.Till, error) {
	return models.GetOpenTill(ctx, subsidiaryID)
}

// Till is the resolver for the till field.
func (r *queryResolver) Till(ctx context.Context, id int) (*models.Till, error) {
	return models.GetTill(ctx, id)
}

// Tills is the resolver for the tills field.
func (r *queryResolver) Tills(ctx context.Context, subsidiaryID *int, status *models.TillStatus) ([]*models.Till, error) {
	return models.GetTills(ctx, subsidiaryID, status)
}

// SummarizeTill is the resolver for the summarizeTill field.
func (r *queryResolver) SummarizeTill(ctx context.Context, tillID int) (*models.ReconciliationSummary, error) {
	return models.SummarizeTill(ctx, tillID)
}

// Payment is the resolver for the payment field.
func (r *queryResolver) Payment(ctx context.Context, id int) (*models.Payment, error) {
	return models.GetPayment(ctx, id)
}

// Payments is the resolver for the payments field.
func (r *queryResolver) Payments(ctx context.Context, tillID *int, subsidiaryID *int, status *models.PaymentStatus) ([]*models.Payment, error) {
	return models.GetPayments(ctx, tillID, subsidiaryID, status)
}

// TillSessionReport is the resolver for the tillSessionReport field.
func (r *queryResolver) TillSessionReport(ctx context.Context, fromDate time.Time, toDate time.Time, subsidiaryID *int) ([]*reports.TillSessionRow, error) {
	return reports.GetTillSessionReport(ctx, fromDate, toDate, subsidiaryID)
}

// SalesByProductReport is the resolver for the salesByProductReport field.
func (r *queryResolver) SalesByProductReport(ctx context.Context, fromDate time.Time, toDate time.Time, subsidiaryID *int, search *string) ([]*reports.SalesByProductRow, error) {
	return reports.GetSalesByProductReport(ctx, fromDate, toDate, subsidiaryID, search)
}

// Subsidiary is the resolver for the subsidiary field.
func (r *saleResolver) Subsidiary(ctx context.Context, obj *models.Sale) (*models.Subsidiary, error) {
	return middlewares.GetSubsidiary(ctx, obj.SubsidiaryId)
}

// Client is the resolver for the client field.
func (r *saleResolver) Client(ctx context.Context, obj *models.Sale) (*models.ClientSupplier, error) {
	if obj.ClientId == 0 {
		return nil, nil
	}
	return middlewares.GetClientSupplier(ctx, obj.ClientId)
}

// Employee is the resolver for the employee field.
func (r *saleResolver) Employee(ctx context.Context, obj *models.Sale) (*models.Employee, error) {
	if obj.EmployeeId == 0 {
		return nil, nil
	}
	return middlewares.GetEmployee(ctx, obj.EmployeeId)
}

// Details is the resolver for the details field.
func (r *saleResolver) Details(ctx context.Context, obj *models.Sale) ([]*models.SaleDetail, error) {
	return middlewares.GetSaleDetails(ctx, obj.ID)
}

// Product is the resolver for the product field.
func (r *saleDetailResolver) Product(ctx context.Context, obj *models.SaleDetail) (*models.Product, error) {
	return middlewares.GetProduct(ctx, obj.ProductId)
}

// Category is the resolver for the category field.
func (r *subCategoryResolver) Category(ctx context.Context, obj *models.SubCategory) (*models.Category, error) {
	return middlewares.GetCategory(ctx, obj.CategoryId)
}

// Subsidiary is the resolver for the subsidiary field.
func (r *tillResolver) Subsidiary(ctx context.Context, obj *models.Till) (*models.Subsidiary, error) {
	return middlewares.GetSubsidiary(ctx, obj.SubsidiaryId)
}

// Company returns CompanyResolver implementation.
func (r *Resolver) Company() CompanyResolver { return &companyResolver{r} }

// Employee returns EmployeeResolver implementation.
func (r *Resolver) Employee() EmployeeResolver { return &employeeResolver{r} }

// Mutation returns MutationResolver implementation.
func (r *Resolver) Mutation() MutationResolver { return &mutationResolver{r} }

// Payment returns PaymentResolver implementation.
func (r *Resolver) Payment() PaymentResolver { return &paymentResolver{r} }

// Product returns ProductResolver implementation.
func (r *Resolver) Product() ProductResolver { return &productResolver{r} }

// Purchase returns PurchaseResolver implementation.
func (r *Resolver) Purchase() PurchaseResolver { return &purchaseResolver{r} }

// PurchaseDetail returns PurchaseDetailResolver implementation.
func (r *Resolver) PurchaseDetail() PurchaseDetailResolver { return &purchaseDetailResolver{r} }

// Query returns QueryResolver implementation.
func (r *Resolver) Query() QueryResolver { return &queryResolver{r} }

// Sale returns SaleResolver implementation.
func (r *Resolver) Sale() SaleResolver { return &saleResolver{r} }

// SaleDetail returns SaleDetailResolver implementation.
func (r *Resolver) SaleDetail() SaleDetailResolver { return &saleDetailResolver{r} }

// SubCategory returns SubCategoryResolver implementation.
func (r *Resolver) SubCategory() SubCategoryResolver { return &subCategoryResolver{r} }

// Till returns TillResolver implementation.
func (r *Resolver) Till() TillResolver { return &tillResolver{r} }

type companyResolver struct{ *Resolver }
type employeeResolver struct{ *Resolver }
type mutationResolver struct{ *Resolver }
type paymentResolver struct{ *Resolver }
type productResolver struct{ *Resolver }
type purchaseResolver struct{ *Resolver }
type purchaseDetailResolver struct{ *Resolver }
type queryResolver struct{ *Resolver }
type saleResolver struct{ *Resolver }
type saleDetailResolver struct{ *Resolver }
type subCategoryResolver struct{ *Resolver }
type tillResolver struct{ *Resolver }
