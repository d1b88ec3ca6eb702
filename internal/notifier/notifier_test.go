// server/internal/notifier/notifier_test.go
package notifier

import (
	"testing"

	"chefhub-kw-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOutboxMessageEmail(t *testing.T) {
	user := models.User{UserID: "chef-ABC12345", Email: "chef@example.kw", Phone: "+96550001111"}
	tpl := ChefApproved("Fatima")

	msg, err := buildOutboxMessage(user.UserID, models.ChannelEmail, tpl, user)
	require.NoError(t, err)

	assert.Equal(t, models.ChannelEmail, msg.Channel)
	assert.Equal(t, "chef-ABC12345", msg.UserID)
	assert.Equal(t, models.OutboxPending, msg.Status)
	assert.Equal(t, "chef@example.kw", msg.To)
	assert.Empty(t, msg.Phone)
	assert.Equal(t, tpl.Title.EN, msg.Subject)
	assert.Equal(t, tpl.HTML(), msg.Body)
	assert.False(t, msg.CreatedAt.IsZero())
}

func TestBuildOutboxMessageWhatsApp(t *testing.T) {
	user := models.User{UserID: "chef-ABC12345", Email: "chef@example.kw", Phone: "+96550001111"}
	tpl := ChefApproved("Fatima")

	msg, err := buildOutboxMessage(user.UserID, models.ChannelWhatsApp, tpl, user)
	require.NoError(t, err)

	assert.Equal(t, models.ChannelWhatsApp, msg.Channel)
	assert.Equal(t, models.OutboxPending, msg.Status)
	assert.Equal(t, "+96550001111", msg.Phone)
	assert.Empty(t, msg.To)
	assert.Empty(t, msg.Subject)
	assert.Equal(t, tpl.PlainText(), msg.Body)
}

func TestBuildOutboxMessageMissingContact(t *testing.T) {
	tpl := ChefApproved("Fatima")

	_, err := buildOutboxMessage("chef-ABC12345", models.ChannelEmail, tpl, models.User{Phone: "+96550001111"})
	assert.ErrorContains(t, err, "no email address")

	_, err = buildOutboxMessage("chef-ABC12345", models.ChannelWhatsApp, tpl, models.User{Email: "chef@example.kw"})
	assert.ErrorContains(t, err, "no phone number")
}

func TestBuildOutboxMessageUnknownChannel(t *testing.T) {
	_, err := buildOutboxMessage("chef-ABC12345", "sms", ChefApproved("Fatima"), models.User{})
	assert.ErrorContains(t, err, "unknown channel")
}

func TestApprovalChannelsProduceEmailAndWhatsApp(t *testing.T) {
	// Duyệt chef enqueue đúng hai bản ghi pending: một email, một whatsapp
	user := models.User{UserID: "chef-ABC12345", Email: "chef@example.kw", Phone: "+96550001111"}
	tpl := ChefApproved("Fatima")

	channels := []string{models.ChannelEmail, models.ChannelWhatsApp}
	seen := make(map[string]models.OutboxMessage, len(channels))
	for _, channel := range channels {
		msg, err := buildOutboxMessage(user.UserID, channel, tpl, user)
		require.NoError(t, err)
		seen[msg.Channel] = msg
	}

	require.Len(t, seen, 2)
	assert.Equal(t, models.OutboxPending, seen[models.ChannelEmail].Status)
	assert.Equal(t, models.OutboxPending, seen[models.ChannelWhatsApp].Status)
	assert.NotEqual(t, seen[models.ChannelEmail].Body, seen[models.ChannelWhatsApp].Body)
}
