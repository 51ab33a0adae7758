package notifier_test

import (
	"testing"

	"betpress/internal/infra/notifier"
)

func TestNoOpNotifier(t *testing.T) {
	n := notifier.NewNoOpNotifier()
	if err := n.NotifyArticle(t.Context(), sampleArticle()); err != nil {
		t.Errorf("NotifyArticle() error = %v, want nil", err)
	}
}
