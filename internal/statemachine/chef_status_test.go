// server/internal/statemachine/chef_status_test.go
package statemachine

import (
	"errors"
	"testing"
	"time"

	"chefhub-kw-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestShouldSendApproval(t *testing.T) {
	// Duyệt lần đầu từ pending và khôi phục từ suspended đều là duyệt thật sự
	assert.True(t, shouldSendApproval(models.StatusPending, models.StatusActive))
	assert.True(t, shouldSendApproval(models.StatusSuspended, models.StatusActive))

	// Set lại active khi đã active không được gửi lại thông báo duyệt
	assert.False(t, shouldSendApproval(models.StatusActive, models.StatusActive))

	// Suspend không bao giờ là duyệt
	assert.False(t, shouldSendApproval(models.StatusActive, models.StatusSuspended))
	assert.False(t, shouldSendApproval(models.StatusPending, models.StatusSuspended))
}

func TestDishCascadeUpdateSuspend(t *testing.T) {
	now := time.Now()
	pipeline := dishCascadeUpdate(models.StatusSuspended, now)
	require.Len(t, pipeline, 1)

	require.Equal(t, "$set", pipeline[0][0].Key)
	set, ok := pipeline[0][0].Value.(bson.M)
	require.True(t, ok)

	assert.Equal(t, models.StatusSuspended, set["status"])
	assert.Equal(t, false, set["isActive"])
	assert.Equal(t, now, set["updatedAt"])

	// Chụp isActive hiện tại vào activeBeforeSuspend, nhưng chỉ lần suspend
	// đầu tiên: các lần sau $ifNull giữ nguyên giá trị đã chụp.
	capture, ok := set["activeBeforeSuspend"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, bson.A{"$activeBeforeSuspend", "$isActive"}, capture["$ifNull"])
}

func TestDishCascadeUpdateActivate(t *testing.T) {
	now := time.Now()
	pipeline := dishCascadeUpdate(models.StatusActive, now)
	require.Len(t, pipeline, 2)

	require.Equal(t, "$set", pipeline[0][0].Key)
	set, ok := pipeline[0][0].Value.(bson.M)
	require.True(t, ok)

	assert.Equal(t, models.StatusActive, set["status"])

	// Dish trở về trạng thái trước suspend; dish chưa từng bị suspend bật mặc định
	restore, ok := set["isActive"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, bson.A{"$activeBeforeSuspend", true}, restore["$ifNull"])

	// Trường chụp tạm phải được dọn sau khi khôi phục
	require.Equal(t, "$unset", pipeline[1][0].Key)
	assert.Equal(t, "activeBeforeSuspend", pipeline[1][0].Value)
}

func TestChefStatusResultRollbackSteps(t *testing.T) {
	// Sau khi transaction abort, result không được báo các bước đã commit
	result := &ChefStatusResult{
		ChefID:         "chef-ABC12345",
		PreviousStatus: models.StatusPending,
		NewStatus:      models.StatusActive,
		ChefUpdated:    true,
		UserUpdated:    true,
		DishesMatched:  4,
		DishesModified: 3,
	}

	result.rollbackSteps()

	assert.False(t, result.ChefUpdated)
	assert.False(t, result.UserUpdated)
	assert.Zero(t, result.DishesMatched)
	assert.Zero(t, result.DishesModified)

	// Danh tính của transition vẫn giữ nguyên để render lỗi
	assert.Equal(t, "chef-ABC12345", result.ChefID)
	assert.Equal(t, models.StatusPending, result.PreviousStatus)
	assert.Equal(t, models.StatusActive, result.NewStatus)
}

func TestIsTransactionUnsupported(t *testing.T) {
	assert.True(t, isTransactionUnsupported(mongo.CommandError{Code: 20, Name: "IllegalOperation"}))
	assert.False(t, isTransactionUnsupported(mongo.CommandError{Code: 11000, Name: "DuplicateKey"}))
	assert.False(t, isTransactionUnsupported(errors.New("network error")))
	assert.False(t, isTransactionUnsupported(nil))
}

func TestErrDishCleanupIncomplete(t *testing.T) {
	cause := errors.New("connection reset")
	err := &ErrDishCleanupIncomplete{Deleted: 3, Cause: cause}

	assert.Contains(t, err.Error(), "3 deletions")
	assert.ErrorIs(t, err, cause)

	var cleanup *ErrDishCleanupIncomplete
	require.ErrorAs(t, error(err), &cleanup)
	assert.Equal(t, int64(3), cleanup.Deleted)
}
