/*
Package colvar computes structural-similarity order parameters for chains
of repeating units.

Given the coordinates of one or more backbone chains, an Engine enumerates
every residue-aligned window of the same length as a reference template,
measures each window's structural distance from the template (by optimal
superposition or by pairwise interatomic distances), passes the distances
through a smooth switching function, and reduces the per-window results
into one or more named scalar outputs. Every output comes with the exact
analytic gradient with respect to every input coordinate and a box
derivative, so the outputs can be used directly for biasing in a molecular
dynamics engine.

Evaluation is a pure function of (coordinates, box): an Engine holds only
immutable configuration plus the bounded-staleness window classification
described at WithSkipUpdates.
*/
package colvar
