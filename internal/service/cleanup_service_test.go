package service

import (
	"testing"
)

type fakeLogCleaner struct {
	logDays     int
	keywordDays int
}

func (f *fakeLogCleaner) DeleteOldLogs(days int) (int64, error) {
	f.logDays = days
	return 5, nil
}

func (f *fakeLogCleaner) DeleteOldKeywords(days int) (int64, error) {
	f.keywordDays = days
	return 2, nil
}

func TestCleanupRunOnce(t *testing.T) {
	cleaner := &fakeLogCleaner{}
	svc := NewCleanupService(cleaner)

	svc.runOnce()

	if cleaner.logDays != searchLogRetentionDays {
		t.Errorf("日志保留天数 = %d, want %d", cleaner.logDays, searchLogRetentionDays)
	}
	if cleaner.keywordDays != keywordRetentionDays {
		t.Errorf("热搜保留天数 = %d, want %d", cleaner.keywordDays, keywordRetentionDays)
	}
}
