// Package docindex indexes PDF and DOCX documents into a vector store.
//
// An Indexer wires the text extractor, the fixed-size-overlap chunker, a
// paced embedding provider and a chunk store from a Config, and runs one
// document at a time through the ingestion pipeline:
//
//	cfg, err := docindex.LoadConfig()
//	if err != nil {
//	    return err
//	}
//	ix, err := docindex.NewIndexer(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer ix.Close()
//
//	report := ix.Index(ctx, "report.pdf")
//	fmt.Println(report.Summary())
package docindex
