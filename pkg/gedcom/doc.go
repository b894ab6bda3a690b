// Package gedcom reads GEDCOM 5.5 files into a [records.Set].
//
// The reader understands the subset of the format the graph tools need:
// INDI records (NAME, SEX, FAMC, FAMS, BIRT/DEAT dates, and any other
// single-valued level-1 tag as a secondary field) and FAM records (HUSB,
// WIFE, CHIL). Continuation lines (CONC, CONT) are joined onto names.
//
// Record ids are the cross-reference ids without delimiters, so "@I12@"
// becomes [records.ID] "I12" while [records.Individual.Xref] keeps the raw
// tag for cross-reference lookups.
//
//	set, err := gedcom.ReadFile("family.ged")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(set.IndividualCount(), "people")
//
// [records.Set]: github.com/matzehuels/gedgraph/pkg/records.Set
package gedcom
