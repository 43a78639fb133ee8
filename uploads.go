package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/pos_backend/config"
	"bitbucket.org/mmdatafocus/pos_backend/models"
	"bitbucket.org/mmdatafocus/pos_backend/models/reports"
	"bitbucket.org/mmdatafocus/pos_backend/utils"
	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const maxUploadSizeBytes int64 = 5 * 1024 * 1024

var imageMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// productImageUploadHandler accepts a multipart image, stores it plus a
// 200px thumbnail in GCS and saves the image url on the product.
func productImageUploadHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		user, err := getSessionUser(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		productId, err := strconv.Atoi(c.Query("id"))
		if err != nil || productId <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product id is required"})
			return
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
			return
		}
		if fileHeader.Size > maxUploadSizeBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file size exceeds 5MB limit"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
			return
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxUploadSizeBytes+1))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
			return
		}
		if int64(len(data)) > maxUploadSizeBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file size exceeds 5MB limit"})
			return
		}

		mimeType := http.DetectContentType(data)
		if !imageMimeTypes[mimeType] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image type"})
			return
		}

		img, err := imaging.Decode(bytes.NewReader(data))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image"})
			return
		}
		thumbnail := imaging.Resize(img, 200, 0, imaging.Lanczos)
		var thumbBuf bytes.Buffer
		if err := imaging.Encode(&thumbBuf, thumbnail, imaging.JPEG); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate thumbnail"})
			return
		}

		ext := ".jpg"
		if mimeType == "image/png" {
			ext = ".png"
		}
		objectKey := path.Join(user.CompanyId, "products", uuid.New().String()+ext)

		ctx := sessionContext(c.Request.Context(), user)
		if err := utils.UploadBytesToGCS(ctx, objectKey, data, mimeType); err != nil {
			logUploadError(logger, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload image"})
			return
		}
		if err := utils.UploadBytesToGCS(ctx, thumbnailObjectKey(objectKey), thumbBuf.Bytes(), "image/jpeg"); err != nil {
			logUploadError(logger, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload thumbnail"})
			return
		}

		imageUrl := utils.GetCloudURL(objectKey)
		product, err := models.SetProductImageUrl(ctx, productId, imageUrl)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		logger.WithFields(logrus.Fields{
			"company_id": user.CompanyId,
			"product_id": product.ID,
			"object_key": objectKey,
		}).Info("[upload.product-image]")

		c.JSON(http.StatusOK, gin.H{
			"data": gin.H{
				"imageUrl":     imageUrl,
				"thumbnailUrl": utils.GetCloudURL(thumbnailObjectKey(objectKey)),
			},
		})
	}
}

func exportTillSessionsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := getSessionUser(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		fromDate, toDate, err := dateRangeFromQuery(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := sessionContext(c.Request.Context(), user)
		if err := reports.ExportTillSessionExcel(ctx, c.Writer, fromDate, toDate, subsidiaryIdFromQuery(c)); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
	}
}

func exportSalesByProductHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := getSessionUser(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		fromDate, toDate, err := dateRangeFromQuery(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var search *string
		if s := strings.TrimSpace(c.Query("search")); s != "" {
			search = &s
		}

		ctx := sessionContext(c.Request.Context(), user)
		if err := reports.ExportSalesByProductExcel(ctx, c.Writer, fromDate, toDate, subsidiaryIdFromQuery(c), search); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
	}
}

func sessionContext(ctx context.Context, user *models.User) context.Context {
	ctx = utils.SetCompanyIdInContext(ctx, user.CompanyId)
	ctx = utils.SetUserIdInContext(ctx, user.ID)
	ctx = utils.SetUserNameInContext(ctx, user.Name)
	return ctx
}

func getSessionUser(ctx context.Context) (*models.User, error) {
	username, ok := utils.GetUsernameFromContext(ctx)
	if !ok || username == "" {
		return nil, errors.New("unauthorized")
	}

	var user models.User
	exists, err := config.GetRedisObject("User:"+username, &user)
	if err != nil {
		return nil, err
	}
	if !exists {
		db := config.GetDB()
		if db == nil {
			return nil, errors.New("db is nil")
		}
		if err := db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Take(&user).Error; err != nil {
			return nil, errors.New("unauthorized")
		}
	}
	if user.CompanyId == "" {
		return nil, errors.New("unauthorized")
	}
	return &user, nil
}

func dateRangeFromQuery(c *gin.Context) (time.Time, time.Time, error) {
	fromDate, err := time.Parse(time.DateOnly, c.Query("from"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("from date is required (YYYY-MM-DD)")
	}
	toDate, err := time.Parse(time.DateOnly, c.Query("to"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("to date is required (YYYY-MM-DD)")
	}
	return fromDate, toDate.Add(24*time.Hour - time.Second), nil
}

func subsidiaryIdFromQuery(c *gin.Context) *int {
	if raw := strings.TrimSpace(c.Query("subsidiaryId")); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil && id > 0 {
			return &id
		}
	}
	return nil
}

func thumbnailObjectKey(objectKey string) string {
	dir := path.Dir(objectKey)
	filename := path.Base(objectKey)
	return path.Join(dir, "thumbnails", filename)
}

func logUploadError(logger *logrus.Logger, err error) {
	logger.WithFields(logrus.Fields{
		"error": err.Error(),
	}).Error("[upload.error]")
}
