package transform

import (
	"sort"

	apperrors "portaletl/internal/errors"
	"portaletl/internal/tabular"
)

// TransformTeamInfo attaches each team's member roster to the team
// table. Member records are nested under a members column with their
// fields in alphabetical order and nulls replaced by empty strings, the
// convention the portal expects for people data.
func TransformTeamInfo(data *tabular.Collection) (*tabular.Table, error) {
	teams, err := requireDataset(data, DatasetTeamInfo)
	if err != nil {
		return nil, err
	}
	members, err := requireDataset(data, "team_member_info")
	if err != nil {
		return nil, err
	}
	if !members.HasColumn("team") {
		return nil, apperrors.NewMissingDataError("column team")
	}

	memberCols := make([]string, 0, len(members.Columns()))
	for _, c := range members.Columns() {
		if c != "team" {
			memberCols = append(memberCols, c)
		}
	}
	sort.Strings(memberCols)

	nested := tabular.New("team", "members")
	for _, g := range members.GroupBy("team") {
		records := make([]tabular.Row, 0, len(g.Rows))
		for _, r := range g.Rows {
			rec := make(tabular.Row, len(memberCols))
			for _, c := range memberCols {
				if v := r[c]; v != nil {
					rec[c] = v
				} else {
					rec[c] = ""
				}
			}
			records = append(records, rec)
		}
		nested.Append(tabular.Row{
			"team": g.Key["team"],
			"members": &tabular.RecordList{
				Columns: append([]string(nil), memberCols...),
				Records: records,
			},
		})
	}

	joined, err := teams.LeftJoin(nested, []string{"team"})
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	return joined, nil
}
