// server/internal/statemachine/chef_status.go
package statemachine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chefhub-kw-api-server/internal/models"
	"chefhub-kw-api-server/internal/notifier"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrChefNotFound  = errors.New("chef not found")
	ErrInvalidStatus = errors.New("status must be active or suspended")
)

// ErrDishCleanupIncomplete báo hiệu DeleteChef dừng trước khi xóa identity vì
// không xóa hết dish; Deleted cho biết đã xóa được bao nhiêu.
type ErrDishCleanupIncomplete struct {
	Deleted int64
	Cause   error
}

func (e *ErrDishCleanupIncomplete) Error() string {
	return fmt.Sprintf("dish cleanup incomplete after %d deletions: %v", e.Deleted, e.Cause)
}

func (e *ErrDishCleanupIncomplete) Unwrap() error { return e.Cause }

// Notifier là phần của notifier.Notifier mà state machine cần.
type Notifier interface {
	Notify(ctx context.Context, userID string, tpl notifier.Template, channels ...string) error
}

// ChefStatusMachine thực hiện các transition trạng thái chef và cascade sang
// User/Dish. Các bước ghi được bọc trong một transaction MongoDB khi deployment
// là replica set; với standalone thì ghi tuần tự và kết quả báo Atomic=false.
type ChefStatusMachine struct {
	DB       *mongo.Database
	Notifier Notifier
}

func NewChefStatusMachine(db *mongo.Database, n Notifier) *ChefStatusMachine {
	return &ChefStatusMachine{DB: db, Notifier: n}
}

// ChefStatusResult mô tả chính xác những gì đã được ghi, để caller render được
// trạng thái partial khi có bước thất bại (không có rollback).
type ChefStatusResult struct {
	ChefID           string `json:"chefID"`
	PreviousStatus   string `json:"previousStatus"`
	NewStatus        string `json:"newStatus"`
	Atomic           bool   `json:"atomic"`
	ChefUpdated      bool   `json:"chefUpdated"`
	UserUpdated      bool   `json:"userUpdated"`
	DishesMatched    int64  `json:"dishesMatched"`
	DishesModified   int64  `json:"dishesModified"`
	NotificationSent bool   `json:"notificationSent"`
}

// rollbackSteps xóa các cờ bước ghi. Gọi khi transaction abort toàn bộ: các cờ
// được set bên trong callback không phản ánh dữ liệu đã commit.
func (r *ChefStatusResult) rollbackSteps() {
	r.ChefUpdated = false
	r.UserUpdated = false
	r.DishesMatched = 0
	r.DishesModified = 0
}

// SetChefStatus chuyển một chef sang active hoặc suspended:
//  1. cập nhật document Chef (status + isActive),
//  2. mirror sang document User,
//  3. cascade sang mọi Dish của chef,
//  4. nếu đây là một lần duyệt thật sự (prev != active → active) thì gửi thông
//     báo duyệt qua in-app + email + WhatsApp.
//
// Lỗi ở bước nào trả về kèm result cho biết các bước trước đó đã commit.
func (m *ChefStatusMachine) SetChefStatus(ctx context.Context, chefID, newStatus string) (*ChefStatusResult, error) {
	if newStatus != models.StatusActive && newStatus != models.StatusSuspended {
		return nil, ErrInvalidStatus
	}

	var chef models.Chef
	err := m.DB.Collection("chefs").FindOne(ctx, bson.M{"chefID": chefID}).Decode(&chef)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrChefNotFound
		}
		return nil, fmt.Errorf("failed to load chef: %w", err)
	}

	result := &ChefStatusResult{
		ChefID:         chefID,
		PreviousStatus: chef.Status,
		NewStatus:      newStatus,
	}

	session, err := m.DB.Client().StartSession()
	if err == nil {
		defer session.EndSession(ctx)
		_, txErr := session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
			return nil, m.applyStatus(sessCtx, chefID, newStatus, result)
		})
		if txErr != nil {
			// Transaction không khả dụng trên standalone mongod; chạy lại
			// tuần tự thay vì từ chối thao tác.
			if isTransactionUnsupported(txErr) {
				result.Atomic = false
				if err := m.applyStatus(ctx, chefID, newStatus, result); err != nil {
					return result, err
				}
			} else {
				// Transaction đã rollback: chỉ đường chạy tuần tự mới được
				// báo trạng thái partial
				result.rollbackSteps()
				return result, txErr
			}
		} else {
			result.Atomic = true
		}
	} else {
		result.Atomic = false
		if err := m.applyStatus(ctx, chefID, newStatus, result); err != nil {
			return result, err
		}
	}

	// Bước 4: thông báo duyệt, chỉ khi prev != active.
	// Lỗi gửi thông báo không bao giờ làm fail transition đã commit.
	if shouldSendApproval(result.PreviousStatus, newStatus) {
		tpl := notifier.ChefApproved(chef.Name)
		if err := m.Notifier.Notify(ctx, chefID, tpl, models.ChannelEmail, models.ChannelWhatsApp); err != nil {
			logrus.WithError(err).WithField("chefID", chefID).Error("Failed to send approval notification")
		} else {
			result.NotificationSent = true
		}
	} else if newStatus == models.StatusSuspended && result.PreviousStatus != models.StatusSuspended {
		if err := m.Notifier.Notify(ctx, chefID, notifier.ChefSuspended(chef.Name)); err != nil {
			logrus.WithError(err).WithField("chefID", chefID).Error("Failed to send suspension notification")
		}
	}

	return result, nil
}

// applyStatus thực hiện ba bước ghi theo đúng thứ tự Chef → User → Dishes.
func (m *ChefStatusMachine) applyStatus(ctx context.Context, chefID, newStatus string, result *ChefStatusResult) error {
	now := time.Now()
	isActive := newStatus == models.StatusActive
	statusFields := bson.M{"status": newStatus, "isActive": isActive, "updatedAt": now}

	res, err := m.DB.Collection("chefs").UpdateOne(ctx, bson.M{"chefID": chefID}, bson.M{"$set": statusFields})
	if err != nil {
		return fmt.Errorf("failed to update chef status: %w", err)
	}
	result.ChefUpdated = res.MatchedCount > 0

	res, err = m.DB.Collection("users").UpdateOne(ctx, bson.M{"userID": chefID}, bson.M{"$set": statusFields})
	if err != nil {
		return fmt.Errorf("failed to mirror status to user: %w", err)
	}
	result.UserUpdated = res.MatchedCount > 0

	dishRes, err := m.DB.Collection("dishes").UpdateMany(ctx, bson.M{"chefID": chefID}, dishCascadeUpdate(newStatus, now))
	if err != nil {
		return fmt.Errorf("failed to cascade status to dishes: %w", err)
	}
	result.DishesMatched = dishRes.MatchedCount
	result.DishesModified = dishRes.ModifiedCount
	return nil
}

// dishCascadeUpdate trả về pipeline update cho cascade trạng thái dish.
//
// Khi suspend: chụp lại isActive hiện tại vào activeBeforeSuspend (chỉ lần
// đầu, $ifNull giữ nguyên giá trị đã chụp) rồi tắt dish.
// Khi activate: trả dish về trạng thái đã chụp, dish chef tự tắt trước khi bị
// suspend sẽ không bị bật nhầm; dish chưa từng bị suspend (duyệt hồ sơ mới)
// được bật mặc định.
func dishCascadeUpdate(newStatus string, now time.Time) mongo.Pipeline {
	if newStatus == models.StatusSuspended {
		return mongo.Pipeline{
			{{Key: "$set", Value: bson.M{
				"activeBeforeSuspend": bson.M{"$ifNull": bson.A{"$activeBeforeSuspend", "$isActive"}},
				"status":              models.StatusSuspended,
				"isActive":            false,
				"updatedAt":           now,
			}}},
		}
	}
	return mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"status":    models.StatusActive,
			"isActive":  bson.M{"$ifNull": bson.A{"$activeBeforeSuspend", true}},
			"updatedAt": now,
		}}},
		{{Key: "$unset", Value: "activeBeforeSuspend"}},
	}
}

// shouldSendApproval: thông báo duyệt chỉ gửi khi đây là lần duyệt thật sự.
func shouldSendApproval(previous, next string) bool {
	return next == models.StatusActive && previous != models.StatusActive
}

// isTransactionUnsupported nhận diện lỗi "Transaction numbers are only allowed
// on a replica set member or mongos" (IllegalOperation) của standalone mongod.
func isTransactionUnsupported(err error) bool {
	var cmdErr mongo.CommandError
	return errors.As(err, &cmdErr) && cmdErr.Code == 20
}

// DeleteChefResult mô tả các bước xóa đã hoàn thành.
type DeleteChefResult struct {
	ChefID         string `json:"chefID"`
	DishesDeleted  int64  `json:"dishesDeleted"`
	UserDeleted    bool   `json:"userDeleted"`
	ChefDeleted    bool   `json:"chefDeleted"`
	ReviewsDeleted int64  `json:"reviewsDeleted"`
}

// DeleteChef xóa một chef theo thứ tự nghiêm ngặt: dish trước, identity sau.
// Nếu xóa dish thất bại thì dừng ngay trước bước xóa identity: chef còn
// identity thì còn khôi phục được; dish mồ côi sống lâu hơn chủ thì không.
func (m *ChefStatusMachine) DeleteChef(ctx context.Context, chefID string) (*DeleteChefResult, error) {
	var chef models.Chef
	err := m.DB.Collection("chefs").FindOne(ctx, bson.M{"chefID": chefID}).Decode(&chef)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrChefNotFound
		}
		return nil, fmt.Errorf("failed to load chef: %w", err)
	}

	result := &DeleteChefResult{ChefID: chefID}

	// (a) Xóa toàn bộ dish của chef.
	dishRes, err := m.DB.Collection("dishes").DeleteMany(ctx, bson.M{"chefID": chefID})
	if dishRes != nil {
		result.DishesDeleted = dishRes.DeletedCount
	}
	if err != nil {
		return result, &ErrDishCleanupIncomplete{Deleted: result.DishesDeleted, Cause: err}
	}

	// (b) Xóa identity (document User), thao tác đặc quyền.
	if _, err := m.DB.Collection("users").DeleteOne(ctx, bson.M{"userID": chefID}); err != nil {
		// Dish đã xóa xong; Chef/User có thể vẫn tồn tại. Trạng thái partial
		// này được chấp nhận và báo lại cho caller.
		return result, fmt.Errorf("failed to delete user identity: %w", err)
	}
	result.UserDeleted = true

	// (c) Xóa document Chef và dữ liệu phụ thuộc còn lại.
	if _, err := m.DB.Collection("chefs").DeleteOne(ctx, bson.M{"chefID": chefID}); err != nil {
		return result, fmt.Errorf("failed to delete chef profile: %w", err)
	}
	result.ChefDeleted = true

	reviewRes, err := m.DB.Collection("chef_reviews").DeleteMany(ctx, bson.M{"chefID": chefID})
	if err != nil {
		logrus.WithError(err).WithField("chefID", chefID).Warn("Failed to delete chef reviews")
	} else {
		result.ReviewsDeleted = reviewRes.DeletedCount
	}

	if _, err := m.DB.Collection("notifications").DeleteMany(ctx, bson.M{"userID": chefID}); err != nil {
		logrus.WithError(err).WithField("chefID", chefID).Warn("Failed to delete chef notifications")
	}

	return result, nil
}
