package giornale

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// ValidationStamp is printed across validated pages of the exported report.
const ValidationStamp = "VIDIMATO"

// MergePdfFiles concatenates the given PDF files into outFile in order.
func MergePdfFiles(inFiles []string, outFile string) error {
	if err := api.MergeCreateFile(inFiles, outFile, false, nil); err != nil {
		return fmt.Errorf("failed to merge PDF files: %w", err)
	}
	return nil
}

// Apply qr code to the bottom right corner of a PDF file
// if array of selected pages is provided, will apply to those pages
// otherwise apply to all pages
func EmbedQRCodeToPdf(inFile, outFile, qrCodePath string, selectedPages []string) error {
	description := "pos: br, off: 0 0, scale: 1 abs, rotation: 0"
	err := api.AddImageWatermarksFile(inFile, outFile, selectedPages, true, qrCodePath, description, nil)
	if err != nil {
		return fmt.Errorf("failed to embed QR code in PDF: %w", err)
	}
	return nil
}

// ApplyValidationStamp prints the diagonal validation mark on the selected
// pages, or on all pages when none are given.
func ApplyValidationStamp(inFile, outFile string, selectedPages []string) error {
	description := "points: 48, col: 0.6 0.6 0.6, op: 0.4, rotation: 45"
	err := api.AddTextWatermarksFile(inFile, outFile, selectedPages, true, ValidationStamp, description, nil)
	if err != nil {
		return fmt.Errorf("failed to apply validation stamp: %w", err)
	}
	return nil
}
