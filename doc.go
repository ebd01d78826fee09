// Package cv2docx turns candidate profile records into formatted .docx
// résumés. It covers the full batch pipeline: loading profiles from JSON or
// spreadsheet sources, resolving and normalizing candidate photos (square
// crop, bounded resolution, size-capped JPEG), rendering one document per
// record, and collecting per-record outcomes into a run report.
//
// Basic usage:
//
//	profiles, err := cv2docx.LoadProfilesJSON("profiles.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//	gen, err := cv2docx.NewGenerator(
//		cv2docx.WithOutputDir("output"),
//		cv2docx.WithPhotoProcessing(true),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	report, err := gen.GenerateBatch(profiles)
//
// Records are processed sequentially and independently: a failing record is
// recorded in the report and never aborts the batch. GenerateBatch returns
// ErrAllRecordsFailed only when no record succeeded.
package cv2docx
