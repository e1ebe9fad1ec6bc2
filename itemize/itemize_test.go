package itemize

import "testing"

func TestFixedBucket(t *testing.T) {
	bucket := FixedBucket(86400)
	tests := []struct {
		interval int
		want     int
	}{
		{0, 0},
		{86399, 0},
		{86400, 1},
		{259200, 3},
	}
	for _, test := range tests {
		if got := bucket(test.interval); got != test.want {
			t.Errorf("FixedBucket(86400)(%d) = %d, want %d", test.interval, got, test.want)
		}
	}
}

func TestFixedBucketPanicsOnNonPositiveSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("FixedBucket(0) did not panic")
		}
	}()
	FixedBucket(0)
}

func TestLog2Bucket(t *testing.T) {
	bucket := Log2Bucket()
	tests := []struct {
		interval int
		want     int
	}{
		{0, 0},
		{1, 1},
		{3, 2},
		{7, 3},
		{13, 3},
	}
	for _, test := range tests {
		if got := bucket(test.interval); got != test.want {
			t.Errorf("Log2Bucket()(%d) = %d, want %d", test.interval, got, test.want)
		}
	}
}
