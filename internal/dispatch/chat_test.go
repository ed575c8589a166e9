package dispatch

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"legalease/internal/analysis"
	"legalease/internal/session"
	"legalease/internal/transcript"
)

func roles(turns []transcript.Turn) []transcript.Role {
	out := make([]transcript.Role, len(turns))
	for i, turn := range turns {
		out[i] = turn.Role
	}
	return out
}

func contents(turns []transcript.Turn) []string {
	out := make([]string, len(turns))
	for i, turn := range turns {
		out[i] = turn.Content
	}
	return out
}

func TestAskAppendsUserTurnImmediately(t *testing.T) {
	f := newFixture(t)
	f.setPrimary(t, "doc_1")

	release := make(chan struct{})
	f.svc.On("AnswerQuestion", mock.Anything, "doc_1", "Q1", "en").
		Run(func(mock.Arguments) { <-release }).
		Return("A1", nil)

	require.NoError(t, f.dispatcher.Ask(context.Background(), "Q1"))

	// The user turn is visible before the answer resolves
	turns := f.dispatcher.Transcript()
	require.Equal(t, []transcript.Role{transcript.RoleUser}, roles(turns))
	require.Equal(t, "Q1", turns[0].Content)

	close(release)
	f.dispatcher.chatPending.Wait()

	turns = f.dispatcher.Transcript()
	require.Equal(t, []transcript.Role{transcript.RoleUser, transcript.RoleAssistant}, roles(turns))
	require.Equal(t, "A1", turns[1].Content)
}

func TestAskSequentialCallsInterleave(t *testing.T) {
	f := newFixture(t)
	f.setPrimary(t, "doc_1")
	f.svc.On("AnswerQuestion", mock.Anything, "doc_1", "Q1", "en").Return("A1", nil)
	f.svc.On("AnswerQuestion", mock.Anything, "doc_1", "Q2", "en").Return("A2", nil)

	require.NoError(t, f.dispatcher.Ask(context.Background(), "Q1"))
	f.dispatcher.chatPending.Wait()
	require.NoError(t, f.dispatcher.Ask(context.Background(), "Q2"))
	f.dispatcher.chatPending.Wait()

	require.Equal(t, []string{"Q1", "A1", "Q2", "A2"}, contents(f.dispatcher.Transcript()))
}

func TestAskAnswersArriveInAskOrder(t *testing.T) {
	f := newFixture(t)
	f.setPrimary(t, "doc_1")

	firstStarted := make(chan struct{})
	firstRelease := make(chan struct{})
	f.svc.On("AnswerQuestion", mock.Anything, "doc_1", "Q1", "en").
		Run(func(mock.Arguments) {
			close(firstStarted)
			<-firstRelease
		}).
		Return("A1", nil)
	f.svc.On("AnswerQuestion", mock.Anything, "doc_1", "Q2", "en").Return("A2", nil)

	require.NoError(t, f.dispatcher.Ask(context.Background(), "Q1"))
	<-firstStarted
	// Q2 is asked while Q1 is still on the wire; the slow first answer
	// must still land first
	require.NoError(t, f.dispatcher.Ask(context.Background(), "Q2"))
	close(firstRelease)
	f.dispatcher.chatPending.Wait()

	require.Equal(t, []string{"Q1", "Q2", "A1", "A2"}, contents(f.dispatcher.Transcript()))
}

func TestAskRejectsBlankQuestion(t *testing.T) {
	f := newFixture(t)
	f.setPrimary(t, "doc_1")

	for _, q := range []string{"", "   ", "\n\t"} {
		err := f.dispatcher.Ask(context.Background(), q)
		var info *ErrorInfo
		require.ErrorAs(t, err, &info)
		require.Equal(t, KindValidationError, info.Kind)
	}
	require.Zero(t, f.chat.Len())
	f.svc.AssertNotCalled(t, "AnswerQuestion")
}

func TestAskRejectsOverlongQuestion(t *testing.T) {
	f := newFixture(t)
	f.setPrimary(t, "doc_1")

	err := f.dispatcher.Ask(context.Background(), strings.Repeat("x", 501))
	var info *ErrorInfo
	require.ErrorAs(t, err, &info)
	require.Equal(t, KindValidationError, info.Kind)
	require.Zero(t, f.chat.Len())
}

func TestAskWithoutDocumentRejected(t *testing.T) {
	f := newFixture(t)

	err := f.dispatcher.Ask(context.Background(), "What does clause 4 mean?")
	var info *ErrorInfo
	require.ErrorAs(t, err, &info)
	require.Equal(t, KindValidationError, info.Kind)
	require.Zero(t, f.chat.Len())
	require.Contains(t, f.notifications, "Upload a document first")
}

func TestAskFailureKeepsUserTurn(t *testing.T) {
	f := newFixture(t)
	f.setPrimary(t, "doc_1")
	f.svc.On("AnswerQuestion", mock.Anything, "doc_1", "Q1", "en").
		Return("", &analysis.RemoteError{StatusCode: 502, Detail: "upstream"})

	require.NoError(t, f.dispatcher.Ask(context.Background(), "Q1"))
	f.dispatcher.chatPending.Wait()

	require.Equal(t, []string{"Q1"}, contents(f.dispatcher.Transcript()))
	require.Contains(t, f.notifications, "Failed to answer")
}

func TestAskNotFoundClearsPrimary(t *testing.T) {
	f := newFixture(t)
	f.setPrimary(t, "doc_1")
	f.svc.On("AnswerQuestion", mock.Anything, "doc_1", "Q1", "en").
		Return("", notFoundErr())

	require.NoError(t, f.dispatcher.Ask(context.Background(), "Q1"))
	f.dispatcher.chatPending.Wait()

	require.Nil(t, f.session.Document(session.SlotPrimary))
	require.Zero(t, f.chat.Len())
	require.Contains(t, f.notifications, "Document no longer available, please upload it again")
}

func TestStaleAnswerDiscarded(t *testing.T) {
	f := newFixture(t)
	f.setPrimary(t, "doc_1")

	started := make(chan struct{})
	release := make(chan struct{})
	f.svc.On("AnswerQuestion", mock.Anything, "doc_1", "Q1", "en").
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return("A1", nil)

	require.NoError(t, f.dispatcher.Ask(context.Background(), "Q1"))
	<-started
	f.setPrimary(t, "doc_2")
	close(release)
	f.dispatcher.chatPending.Wait()

	// The answer belongs to the superseded document; the fresh transcript
	// must not receive it
	require.Zero(t, f.chat.Len())
}
