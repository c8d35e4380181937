package thread_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/RayanBabar/validator-ai/internal/domain/thread"
)

func TestState_Clone(t *testing.T) {
	original := &thread.State{
		ThreadID:        "t1",
		CurrentQuestion: "q2",
		QuestionNumber:  2,
		Answered: []thread.AnsweredPair{
			{Question: "q1", Answer: "a1"},
		},
	}

	clone := original.Clone()
	clone.QuestionNumber = 3
	clone.Answered = append(clone.Answered, thread.AnsweredPair{Question: "q2", Answer: "a2"})
	clone.Answered[0].Answer = "mutated"

	require.Equal(t, 2, original.QuestionNumber)
	require.Len(t, original.Answered, 1)
	require.Equal(t, "a1", original.Answered[0].Answer)
}
