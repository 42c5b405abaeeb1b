package extractor_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"rpg-engine/internal/extractor"
	"rpg-engine/internal/mocks"
	"rpg-engine/pkg/ai"
	"rpg-engine/shared/models"
)

func testRoster() models.Roster {
	return models.Roster{
		IDs:   []int{1, 2},
		Names: []string{"Bob", "Josh"},
		Money: []float64{50, 20},
	}
}

func newSession(kind models.AttributeKind) *ai.ChatSession {
	return ai.NewChatSession("updates_"+string(kind), "system")
}

// lastMessageContains matches the chat call whose newest message holds the
// given substring.
func lastMessageContains(sub string) interface{} {
	return mock.MatchedBy(func(messages []models.ChatMessage) bool {
		return len(messages) > 0 && strings.Contains(messages[len(messages)-1].Content, sub)
	})
}

func TestExtract(t *testing.T) {
	ctx := context.Background()

	t.Run("false reply means no updates", func(t *testing.T) {
		client := mocks.NewMockChatClient(t)
		client.On("Chat", ctx, mock.Anything).Return("False", nil).Once()

		ext := extractor.New(client, zap.NewNop(), 2)
		updates, err := ext.Extract(ctx, models.KindMoney, newSession(models.KindMoney), "story", "chars", testRoster())
		assert.NoError(t, err)
		assert.Empty(t, updates)
		client.AssertExpectations(t)
	})

	t.Run("multi line reply parses into typed updates", func(t *testing.T) {
		client := mocks.NewMockChatClient(t)
		client.On("Chat", ctx, mock.Anything).Return("1+=10.50\n2-=5", nil).Once()

		ext := extractor.New(client, zap.NewNop(), 2)
		updates, err := ext.Extract(ctx, models.KindMoney, newSession(models.KindMoney), "story", "chars", testRoster())
		assert.NoError(t, err)
		assert.Equal(t, []models.Update{
			{Kind: models.KindMoney, CharID: 1, Op: models.OpIncrease, Value: "10.50"},
			{Kind: models.KindMoney, CharID: 2, Op: models.OpDecrease, Value: "5"},
		}, updates)
	})

	t.Run("name references resolve against the roster", func(t *testing.T) {
		client := mocks.NewMockChatClient(t)
		client.On("Chat", ctx, mock.Anything).Return("Bob=Josh, Partners", nil).Once()

		ext := extractor.New(client, zap.NewNop(), 2)
		updates, err := ext.Extract(ctx, models.KindRelationship, newSession(models.KindRelationship), "story", "chars", testRoster())
		assert.NoError(t, err)
		assert.Equal(t, []models.Update{
			{Kind: models.KindRelationship, CharID: 1, OtherCharID: 2, Value: "Partners"},
		}, updates)
	})

	t.Run("malformed line is requeried with the original line", func(t *testing.T) {
		client := mocks.NewMockChatClient(t)
		// Initial extraction returns a prose line.
		client.On("Chat", ctx, lastMessageContains("Story:")).Return("Bob gained 10 gold", nil).Once()
		// The requery quotes the offending line and returns a corrected one.
		client.On("Chat", ctx, lastMessageContains("Bob gained 10 gold")).Return("1+=10", nil).Once()

		ext := extractor.New(client, zap.NewNop(), 3)
		updates, err := ext.Extract(ctx, models.KindMoney, newSession(models.KindMoney), "story", "chars", testRoster())
		assert.NoError(t, err)
		assert.Equal(t, []models.Update{
			{Kind: models.KindMoney, CharID: 1, Op: models.OpIncrease, Value: "10"},
		}, updates)
		client.AssertExpectations(t)
	})

	t.Run("unsalvageable line is dropped, batch survives", func(t *testing.T) {
		client := mocks.NewMockChatClient(t)
		client.On("Chat", ctx, lastMessageContains("Story:")).Return("garbage line\n2-=5", nil).Once()
		// Every requery keeps returning the same broken line until the
		// budget runs out.
		client.On("Chat", ctx, lastMessageContains("garbage line")).Return("still garbage", nil).Twice()

		ext := extractor.New(client, zap.NewNop(), 2)
		updates, err := ext.Extract(ctx, models.KindMoney, newSession(models.KindMoney), "story", "chars", testRoster())
		assert.NoError(t, err)
		assert.Equal(t, []models.Update{
			{Kind: models.KindMoney, CharID: 2, Op: models.OpDecrease, Value: "5"},
		}, updates)
		client.AssertExpectations(t)
	})

	t.Run("invalid numeric value drops the line", func(t *testing.T) {
		client := mocks.NewMockChatClient(t)
		client.On("Chat", ctx, mock.Anything).Return("1+=ten gold", nil).Once()

		ext := extractor.New(client, zap.NewNop(), 2)
		updates, err := ext.Extract(ctx, models.KindHP, newSession(models.KindHP), "story", "chars", testRoster())
		assert.NoError(t, err)
		assert.Empty(t, updates)
	})

	t.Run("fenced reply is normalized before parsing", func(t *testing.T) {
		client := mocks.NewMockChatClient(t)
		client.On("Chat", ctx, mock.Anything).Return("```plaintext\n1=Badly_wounded\n```", nil).Once()

		ext := extractor.New(client, zap.NewNop(), 2)
		updates, err := ext.Extract(ctx, models.KindPhysicalCondition, newSession(models.KindPhysicalCondition), "story", "chars", testRoster())
		assert.NoError(t, err)
		assert.Equal(t, []models.Update{
			{Kind: models.KindPhysicalCondition, CharID: 1, Value: "Badly wounded"},
		}, updates)
	})

	t.Run("session history grows by one exchange", func(t *testing.T) {
		client := mocks.NewMockChatClient(t)
		client.On("Chat", ctx, mock.Anything).Return("False", nil).Once()

		session := newSession(models.KindMoney)
		ext := extractor.New(client, zap.NewNop(), 2)
		_, err := ext.Extract(ctx, models.KindMoney, session, "story", "chars", testRoster())
		assert.NoError(t, err)
		// system + user + assistant
		assert.Len(t, session.History(), 3)
	})
}
