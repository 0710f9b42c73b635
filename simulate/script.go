package simulate

import (
	"strconv"
	"strings"
	"text/template"

	"github.com/grailbio/coaltract/demography"
	"github.com/grailbio/coaltract/treeseq"
)

var funcs = template.FuncMap{
	"str": strconv.Quote,
	"num": func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) },
	"strs": func(s []string) string {
		q := make([]string, len(s))
		for i, v := range s {
			q[i] = strconv.Quote(v)
		}
		return "[" + strings.Join(q, ", ") + "]"
	},
}

// The driver builds the demography, simulates ancestry and mutations, and
// writes the .trees file, a VCF with "<pop>_<k>" individual names, and the
// text tables read by treeseq.Load.
var scriptTemplate = template.Must(template.New("driver").Funcs(funcs).Parse(`# Generated by bio-coaltract for model {{str .Model.Name}}; do not edit.
import os

import msprime
import tskit

demography = msprime.Demography()
{{- range .Model.Populations}}
demography.add_population(name={{str .Name}}, initial_size={{num .InitialSize}}{{if .Description}}, description={{str .Description}}{{end}})
{{- end}}
{{- range .Model.Splits}}
demography.add_population_split(time={{num .Time}}, derived={{strs .Derived}}, ancestral={{str .Ancestral}})
{{- end}}
{{- range .Model.Migrations}}
{{- if .IsPulse}}
demography.add_mass_migration(time={{num .Time}}, source={{str .Source}}, dest={{str .Dest}}, proportion={{num .Proportion}})
{{- else}}
demography.set_migration_rate(source={{str .Source}}, dest={{str .Dest}}, rate={{num .Rate}})
{{- end}}
{{- end}}
demography.sort_events()

samples = [
{{- range .Samples}}
    msprime.SampleSet({{.Count}}, population={{str .Population}}, ploidy={{.Ploidy}}),
{{- end}}
]

ts = msprime.sim_ancestry(
    samples=samples,
    demography=demography,
    sequence_length={{num .Model.SequenceLength}},
    recombination_rate={{num .Model.RecombinationRate}},
    record_migrations={{if .Model.RecordMigrations}}True{{else}}False{{end}},
    random_seed={{.Seed}},
)
{{- if gt .Model.MutationRate 0.0}}
ts = msprime.sim_mutations(ts, rate={{num .Model.MutationRate}}{{if .Model.MutationModel}}, model={{str .Model.MutationModel}}{{end}}, random_seed={{.Seed}})
{{- end}}

prefix = os.path.join({{str .OutDir}}, {{str .Prefix}})
ts.dump(prefix + ".trees")

names = []
counts = {}
for ind in ts.individuals():
    pop = ts.population(ts.node(ind.nodes[0]).population).metadata["name"]
    k = counts.get(pop, 0)
    counts[pop] = k + 1
    names.append(f"{pop}_{k}")
with open(prefix + ".vcf", "w") as f:
    ts.write_vcf(f, individual_names=names)

tables_dir = prefix + ".tables"
os.makedirs(tables_dir, exist_ok=True)


def write_table(name, header, rows):
    with open(os.path.join(tables_dir, name), "w") as f:
        f.write("\t".join(header) + "\n")
        for row in rows:
            f.write("\t".join(str(x) for x in row) + "\n")


write_table({{str .Files.Nodes}}, ["id", "is_sample", "time", "population", "individual"],
            [(i, int(n.flags & tskit.NODE_IS_SAMPLE != 0), n.time, n.population, n.individual)
             for i, n in enumerate(ts.tables.nodes)])
write_table({{str .Files.Edges}}, ["left", "right", "parent", "child"],
            [(e.left, e.right, e.parent, e.child) for e in ts.tables.edges])
write_table({{str .Files.Populations}}, ["id", "name", "description"],
            [(p.id, p.metadata.get("name", ""), p.metadata.get("description", "")) for p in ts.populations()])
write_table({{str .Files.Migrations}}, ["left", "right", "node", "source", "dest", "time"],
            [(m.left, m.right, m.node, m.source, m.dest, m.time) for m in ts.tables.migrations])
write_table({{str .Files.Sites}}, ["id", "position", "ancestral_state"],
            [(i, s.position, s.ancestral_state) for i, s in enumerate(ts.tables.sites)])
write_table({{str .Files.Mutations}}, ["site", "node", "derived_state"],
            [(m.site, m.node, m.derived_state) for m in ts.tables.mutations])

print(f"wrote {prefix}.trees, {prefix}.vcf and {tables_dir}: "
      f"{ts.num_trees} trees, {ts.num_sites} sites, {ts.num_migrations} migrations")
`))

type sampleSet struct {
	Population string
	Count      int
	Ploidy     int
}

type tableFiles struct {
	Nodes, Edges, Populations, Migrations, Sites, Mutations string
}

type scriptData struct {
	Model   *demography.Model
	Samples []sampleSet
	Seed    string
	OutDir  string
	Prefix  string
	Files   tableFiles
}

// Script renders the Python driver that simulates m and writes its outputs
// under outDir with the base name prefix.
func Script(m *demography.Model, outDir, prefix string) (string, error) {
	if err := m.Validate(); err != nil {
		return "", err
	}
	data := scriptData{
		Model:  m,
		Seed:   "None",
		OutDir: outDir,
		Prefix: prefix,
		Files: tableFiles{
			Nodes:       treeseq.NodesFile,
			Edges:       treeseq.EdgesFile,
			Populations: treeseq.PopulationsFile,
			Migrations:  treeseq.MigrationsFile,
			Sites:       treeseq.SitesFile,
			Mutations:   treeseq.MutationsFile,
		},
	}
	if m.RandomSeed != 0 {
		data.Seed = strconv.FormatInt(m.RandomSeed, 10)
	}
	for _, s := range m.Samples {
		data.Samples = append(data.Samples, sampleSet{s.Population, s.Count, m.SamplePloidy(s)})
	}
	var b strings.Builder
	if err := scriptTemplate.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
