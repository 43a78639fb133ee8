package middlewares

import (
	"context"
	"reflect"
	"time"

	"bitbucket.org/mmdatafocus/pos_backend/config"
	"bitbucket.org/mmdatafocus/pos_backend/models"
	"github.com/gin-gonic/gin"
	"github.com/graph-gophers/dataloader/v7"
	"gorm.io/gorm"
)

type ctxKey string

const (
	loadersKey = ctxKey("dataloaders")
)

// Loaders wrap your data loaders to inject via middleware
type Loaders struct {
	subsidiaryLoader     *dataloader.Loader[int, *models.Subsidiary]
	chargeLoader         *dataloader.Loader[int, *models.Charge]
	employeeLoader       *dataloader.Loader[int, *models.Employee]
	categoryLoader       *dataloader.Loader[int, *models.Category]
	subCategoryLoader    *dataloader.Loader[int, *models.SubCategory]
	unitMeasureLoader    *dataloader.Loader[int, *models.UnitMeasure]
	productLoader        *dataloader.Loader[int, *models.Product]
	clientSupplierLoader *dataloader.Loader[int, *models.ClientSupplier]
	tillLoader           *dataloader.Loader[int, *models.Till]

	saleLoader           *dataloader.Loader[int, *models.Sale]
	saleDetailLoader     *dataloader.Loader[int, []*models.SaleDetail]
	purchaseLoader       *dataloader.Loader[int, *models.Purchase]
	purchaseDetailLoader *dataloader.Loader[int, []*models.PurchaseDetail]
}

// NewLoaders instantiates data loaders for the middleware
func NewLoaders(conn *gorm.DB) *Loaders {
	// define the data loader
	subsidiaryReader := &subsidiaryReader{db: conn}
	chargeReader := &chargeReader{db: conn}
	employeeReader := &employeeReader{db: conn}
	categoryReader := &categoryReader{db: conn}
	subCategoryReader := &subCategoryReader{db: conn}
	unitMeasureReader := &unitMeasureReader{db: conn}
	productReader := &productReader{db: conn}
	clientSupplierReader := &clientSupplierReader{db: conn}
	tillReader := &tillReader{db: conn}

	saleReader := &saleReader{db: conn}
	saleDetailReader := &saleDetailReader{db: conn}
	purchaseReader := &purchaseReader{db: conn}
	purchaseDetailReader := &purchaseDetailReader{db: conn}

	return &Loaders{
		subsidiaryLoader:     dataloader.NewBatchedLoader(subsidiaryReader.getSubsidiaries, dataloader.WithWait[int, *models.Subsidiary](time.Millisecond)),
		chargeLoader:         dataloader.NewBatchedLoader(chargeReader.getCharges, dataloader.WithWait[int, *models.Charge](time.Millisecond)),
		employeeLoader:       dataloader.NewBatchedLoader(employeeReader.getEmployees, dataloader.WithWait[int, *models.Employee](time.Millisecond)),
		categoryLoader:       dataloader.NewBatchedLoader(categoryReader.getCategories, dataloader.WithWait[int, *models.Category](time.Millisecond)),
		subCategoryLoader:    dataloader.NewBatchedLoader(subCategoryReader.getSubCategories, dataloader.WithWait[int, *models.SubCategory](time.Millisecond)),
		unitMeasureLoader:    dataloader.NewBatchedLoader(unitMeasureReader.getUnitMeasures, dataloader.WithWait[int, *models.UnitMeasure](time.Millisecond)),
		productLoader:        dataloader.NewBatchedLoader(productReader.getProducts, dataloader.WithWait[int, *models.Product](time.Millisecond)),
		clientSupplierLoader: dataloader.NewBatchedLoader(clientSupplierReader.getClientSuppliers, dataloader.WithWait[int, *models.ClientSupplier](time.Millisecond)),
		tillLoader:           dataloader.NewBatchedLoader(tillReader.getTills, dataloader.WithWait[int, *models.Till](time.Millisecond)),

		saleLoader:           dataloader.NewBatchedLoader(saleReader.getSales, dataloader.WithWait[int, *models.Sale](time.Millisecond)),
		saleDetailLoader:     dataloader.NewBatchedLoader(saleDetailReader.GetSaleDetails, dataloader.WithWait[int, []*models.SaleDetail](time.Millisecond)),
		purchaseLoader:       dataloader.NewBatchedLoader(purchaseReader.getPurchases, dataloader.WithWait[int, *models.Purchase](time.Millisecond)),
		purchaseDetailLoader: dataloader.NewBatchedLoader(purchaseDetailReader.GetPurchaseDetails, dataloader.WithWait[int, []*models.PurchaseDetail](time.Millisecond)),
	}
}

func LoaderMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		loader := NewLoaders(config.GetDB())
		ctx := context.WithValue(c.Request.Context(), loadersKey, loader)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func For(ctx context.Context) *Loaders {
	return ctx.Value(loadersKey).(*Loaders)
}

// handleError creates array of result with the same error repeated for as many items requested
func handleError[T any](itemsLength int, err error) []*dataloader.Result[T] {
	result := make([]*dataloader.Result[T], itemsLength)
	for i := 0; i < itemsLength; i++ {
		result[i] = &dataloader.Result[T]{Error: err}
	}
	return result
}

// turns results from db into dataloader results
// (T must be a struct)
func generateLoaderResults[T models.Data](results []T, ids []int) []*dataloader.Result[*T] {
	// generate resultMap from results
	resultMap := make(map[int]T)
	var resultZero T
	resultMap[0] = resultZero.GetDefault(0).(T)
	for _, result := range results {
		resultMap[result.GetId()] = result
	}

	loaderResults := make([]*dataloader.Result[*T], 0, len(ids))
	for _, id := range ids {
		data := resultMap[id]
		if reflect.ValueOf(data).IsZero() {
			data = data.GetDefault(id).(T)
		}
		loaderResults = append(loaderResults, &dataloader.Result[*T]{Data: &data})
	}
	return loaderResults
}

// T must be struct
// each id has many related results
func generateLoaderArrayResults[T models.RelatedData](results []T, referenceIds []int) (loaderResults []*dataloader.Result[[]*T]) {
	resultMap := make(map[int][]*T)
	for _, result := range results {
		// creating a new variable every turn, to avoid pointing to the adddress of result
		copy := result
		resultMap[result.GetReferenceId()] = append(resultMap[result.GetReferenceId()], &copy)
	}
	for _, id := range referenceIds {
		resultArray := resultMap[id]
		loaderResults = append(loaderResults, &dataloader.Result[[]*T]{Data: resultArray})
	}
	return loaderResults
}
