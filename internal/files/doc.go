// Package files locates the play-type input tables on disk.
//
// Discovery lists the CSV files of a data directory and matches each one to
// a play type by its file name, ignoring case:
//
//	set, err := files.NewDiscovery(base).DiscoverTables("data")
//	if err != nil {
//	    return err
//	}
//	res, err := organizer.LoadAndMerge(ctx, set.Sources())
package files
