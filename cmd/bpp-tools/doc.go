// 18 Oct 2026

/*
Bpp-tools reads multi-locus alignments in phylip format and does things
to them.

Usage:

	bpp-tools -msa FILENAME [options] [command]

Commands (at most one):

	-explode         write each locus to its own file, OUT.0, OUT.1, ...
	-extract CSV     keep only the taxa named in CSV
	-remove CSV      drop the taxa named in CSV
	-dstat A,B,C,D   ABBA-BABA test on the concatenated loci
	-plot PNGFILE    draw the first locus
	-arch            say what machine we are on
	-version
	-help

With no command, the alignments are read, optionally trimmed and
written to -out or stdout.

A token in -extract or -remove that starts with '^' matches the end of
a label, so ^human picks out every sequence from species human. Any
other token matches the start of a label.

The argument to -squash is either a label or the number of a sequence,
counting from 1. Columns where that sequence has a gap are removed.

Settings can come from a yaml file given by -config or the
BPP_TOOLS_CONFIG environment variable. Flags on the command line win.

	out: result.phy
	alphabet: nt
	log_level: debug
	jobs: 4
	pretty: true
*/
package main
