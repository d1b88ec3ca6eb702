// server/internal/api/handlers/banner_handler_test.go
package handlers

import (
	"testing"

	"chefhub-kw-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sortedBanners() []models.Banner {
	return []models.Banner{
		{BannerID: "BNR-A", Order: 1},
		{BannerID: "BNR-B", Order: 2},
		{BannerID: "BNR-C", Order: 3},
	}
}

func TestSwapOrdersMoveUp(t *testing.T) {
	writes, found := swapOrders(sortedBanners(), "BNR-B", "up")
	require.True(t, found)
	require.Len(t, writes, 2)

	assert.Equal(t, orderWrite{BannerID: "BNR-B", Order: 1}, writes[0])
	assert.Equal(t, orderWrite{BannerID: "BNR-A", Order: 2}, writes[1])
}

func TestSwapOrdersMoveDown(t *testing.T) {
	writes, found := swapOrders(sortedBanners(), "BNR-B", "down")
	require.True(t, found)
	require.Len(t, writes, 2)

	assert.Equal(t, orderWrite{BannerID: "BNR-B", Order: 3}, writes[0])
	assert.Equal(t, orderWrite{BannerID: "BNR-C", Order: 2}, writes[1])
}

func TestSwapOrdersBoundariesAreNoops(t *testing.T) {
	// Banner đầu danh sách không đi lên được, banner cuối không đi xuống được
	writes, found := swapOrders(sortedBanners(), "BNR-A", "up")
	require.True(t, found)
	assert.Empty(t, writes)

	writes, found = swapOrders(sortedBanners(), "BNR-C", "down")
	require.True(t, found)
	assert.Empty(t, writes)
}

func TestSwapOrdersUnknownBanner(t *testing.T) {
	_, found := swapOrders(sortedBanners(), "BNR-X", "up")
	assert.False(t, found)
}

func TestSwapOrdersIsInvolution(t *testing.T) {
	// Swap hai lần cùng một banner phải trả danh sách về thứ tự ban đầu
	banners := sortedBanners()

	writes, found := swapOrders(banners, "BNR-B", "down")
	require.True(t, found)
	applyWrites(banners, writes)

	writes, found = swapOrders(resort(banners), "BNR-B", "up")
	require.True(t, found)
	applyWrites(banners, writes)

	for _, b := range banners {
		switch b.BannerID {
		case "BNR-A":
			assert.Equal(t, 1, b.Order)
		case "BNR-B":
			assert.Equal(t, 2, b.Order)
		case "BNR-C":
			assert.Equal(t, 3, b.Order)
		}
	}
}

func TestSwapOrdersDuplicateOrderValues(t *testing.T) {
	// Dữ liệu cũ với order trùng nhau: swap theo giá trị sẽ không đổi gì,
	// nên hai banner được gán lại order theo vị trí danh sách.
	banners := []models.Banner{
		{BannerID: "BNR-A", Order: 5},
		{BannerID: "BNR-B", Order: 5},
	}

	writes, found := swapOrders(banners, "BNR-B", "up")
	require.True(t, found)
	require.Len(t, writes, 2)

	assert.Equal(t, orderWrite{BannerID: "BNR-B", Order: 0}, writes[0])
	assert.Equal(t, orderWrite{BannerID: "BNR-A", Order: 1}, writes[1])
	assert.NotEqual(t, writes[0].Order, writes[1].Order)
}

func applyWrites(banners []models.Banner, writes []orderWrite) {
	for i := range banners {
		for _, w := range writes {
			if banners[i].BannerID == w.BannerID {
				banners[i].Order = w.Order
			}
		}
	}
}

func resort(banners []models.Banner) []models.Banner {
	out := make([]models.Banner, len(banners))
	copy(out, banners)
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].Order < out[i].Order {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out
}
