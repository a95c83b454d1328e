// 31 July 2020

/*

Randphy is for making random phylip alignments for testing the code.
Usage:
	randphy [options] fname ntaxa length
will generate alignments of ntaxa sequences of length length and write
them to fname. A file name of "-" means standard output.

Flags:
	-n
		number of loci, written one after the other (default 1)
	-i
		write one interleaved alignment instead
	-w
		block width for interleaved output
	-g
		no gaps in the output sequences
	-a
		put in some ambiguity codes
	-s
		no random white space
	-r
		random number seed

We are most interested in benchmarking and parsing, so the content is
not so important. Whitespace should generally be unpredictable, so we
put it in random places.
*/
package main
