// Package playtype organizes per-play-type defensive statistics.
//
// Each of the seven play types is read from its own table of PLAYER, POSS
// and PPP columns. The organizer computes the possession-weighted league
// PPP of every play type, marks a player competent at a play type when they
// allowed fewer points per possession than the league over more than
// MinPossessions possessions, and outer-joins the tables on the player
// name. Players missing from a table are treated as zero possessions and
// not competent there.
//
//	org := playtype.NewOrganizer(logger)
//	res, err := org.LoadAndMerge(ctx, playtype.DirSources("data"))
//	if err != nil {
//		return err
//	}
//	elite := res.Merged.WithTotalCompetent(6)
package playtype
