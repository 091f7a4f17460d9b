// Package geom provides the value types shared by the scripting bridge:
// vectors, locations, rotations, transforms, bounding boxes and geodetic
// coordinates. All types are plain values and safe to copy; the only
// mutating operations are the pointer-receiver *Assign methods,
// Transform.TransformPoint(s) and the List setters.
package geom
