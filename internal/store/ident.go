package store

import "fmt"

// External identifier formats. The sequence component is fed by the backend's
// identity source (in-process counter or database serial), which guarantees
// uniqueness without a separate read-max step.

func FormatTraineeID(year int, seq int64) string {
	return fmt.Sprintf("T-%d-%04d", year, seq)
}

func FormatReceiptNumber(year int, seq int64) string {
	return fmt.Sprintf("RN-%d-%03d", year, seq)
}

func FormatCertificateNumber(year int, seq int64) string {
	return fmt.Sprintf("CERT-%d-%04d", year, seq)
}
