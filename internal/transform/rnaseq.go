package transform

import (
	"fmt"
	"math"
	"strings"

	apperrors "portaletl/internal/errors"
	"portaletl/internal/tabular"
)

// substitution rewrites every occurrence of old inside a text column.
// Non-string cells pass through untouched.
type substitution struct {
	column string
	old    string
	new    string
}

// rnaSubstitutions map source vocabularies to display vocabularies.
// They run in order over already-rewritten text; FEMALE must rewrite
// before its MALE substring.
var rnaSubstitutions = []substitution{
	{"study", "MAYO", "MayoRNAseq"},
	{"study", "MSSM", "MSBB"},
	{"sex", "ALL", "males and females"},
	{"sex", "FEMALE", "females only"},
	{"sex", "MALE", "males only"},
	{"model", ".", " x "},
	{"model", "Diagnosis", "AD Diagnosis"},
}

func applySubstitutions(t *tabular.Table, subs []substitution) *tabular.Table {
	out := t
	for _, sub := range subs {
		s := sub
		out = out.SetColumn(s.column, func(r tabular.Row) interface{} {
			v, ok := r[s.column].(string)
			if !ok {
				return r[s.column]
			}
			return strings.ReplaceAll(v, s.old, s.new)
		})
	}
	return out
}

// TransformRNASeqDifferentialExpression prepares differential-expression
// results for display: study, sex, and model codes are rewritten to
// their display vocabularies, the linear fold change fc = 2^logfc is
// derived, and the sex label is folded into the model name.
func TransformRNASeqDifferentialExpression(data *tabular.Collection) (*tabular.Table, error) {
	src, err := requireDataset(data, "diff_exp_data")
	if err != nil {
		return nil, err
	}
	for _, c := range []string{"ensembl_gene_id", "hgnc_symbol", "logfc", "ci_l", "ci_r", "adj_p_val", "tissue", "study", "model", "sex"} {
		if !src.HasColumn(c) {
			return nil, apperrors.NewMissingDataError(fmt.Sprintf("column %s", c))
		}
	}

	out := applySubstitutions(src, rnaSubstitutions)

	out, err = deriveColumn(out, "fc", func(r tabular.Row) (interface{}, error) {
		v := r["logfc"]
		if v == nil {
			return nil, nil
		}
		f, err := tabular.ToFloat(v)
		if err != nil {
			return nil, apperrors.NewCoercionError("column logfc is not numeric", err)
		}
		return math.Exp2(f), nil
	})
	if err != nil {
		return nil, err
	}

	out = out.SetColumn("model", func(r tabular.Row) interface{} {
		model, ok := r["model"].(string)
		if !ok {
			return r["model"]
		}
		sex, ok := r["sex"].(string)
		if !ok {
			return nil
		}
		return model + " (" + sex + ")"
	})

	return requireColumns(out, "ensembl_gene_id", "hgnc_symbol", "logfc", "fc", "ci_l", "ci_r", "adj_p_val", "tissue", "study", "model")
}
