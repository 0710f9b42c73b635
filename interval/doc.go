/*Package interval implements half-open genomic intervals ("tracts") and
  interval-union operations over them.
  (Note the 'union'.  Overlapping and touching intervals are merged, not
  tracked separately; use Index when the individual intervals matter, e.g.
  for raw migration records that may overlap.)
  Coordinates are PosType, a float64, since tree sequence coordinates are
  stored as doubles even when the simulated genome is discrete.
*/
package interval
