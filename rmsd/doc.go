/*
Package rmsd measures how far a set of atomic coordinates is from a fixed
reference structure, together with the exact derivative of that measure with
respect to every atom.

Two interchangeable metrics are provided. Optimal removes translation by
centering both structures and finds the rotation minimizing the root mean
square atomic displacement, using the quaternion characteristic polynomial
method of Theobald (Acta Crystallographica A 61(4):478-480, 2005). Pairwise
compares the two sets of intramolecular distances instead, which makes it
invariant under rotation, translation and reflection without any alignment
step.
*/
package rmsd
